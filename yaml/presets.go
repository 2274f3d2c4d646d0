// Package yaml provides preset selector tables loaded from YAML. Presets
// are static configuration for known sites plus a generic fallback; they
// seed extraction before any learning has happened.
package yaml

import (
	_ "embed"
	"os"
	"strings"

	"github.com/fwojciec/adaptext"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresets []byte

// Ensure PresetService implements adaptext.PresetService at compile time.
var _ adaptext.PresetService = (*PresetService)(nil)

// fileConfig mirrors the YAML layout: a generic table plus per-domain tables.
type fileConfig struct {
	Generic map[string][]string            `yaml:"generic"`
	Domains map[string]map[string][]string `yaml:"domains"`
}

// PresetService serves per-domain and generic selector tables.
type PresetService struct {
	generic adaptext.ExtractionConfig
	domains map[string]adaptext.ExtractionConfig
}

// NewPresetService creates a PresetService from the embedded default tables.
func NewPresetService() *PresetService {
	s, err := parsePresets(defaultPresets)
	if err != nil {
		// The embedded defaults are validated by tests; a parse failure here
		// is a build defect.
		panic(err)
	}
	return s
}

// LoadPresetService creates a PresetService from a user-supplied YAML file.
func LoadPresetService(path string) (*PresetService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, adaptext.Errorf(adaptext.EUNAVAILABLE, "failed to read presets file: %v", err)
	}
	return parsePresets(data)
}

func parsePresets(data []byte) (*PresetService, error) {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, adaptext.Errorf(adaptext.EINVALID, "failed to parse presets YAML: %v", err)
	}

	generic, err := toConfig(cfg.Generic)
	if err != nil {
		return nil, err
	}
	if len(generic) == 0 {
		return nil, adaptext.Errorf(adaptext.EINVALID, "presets require a generic table")
	}

	domains := make(map[string]adaptext.ExtractionConfig, len(cfg.Domains))
	for domain, table := range cfg.Domains {
		config, err := toConfig(table)
		if err != nil {
			return nil, err
		}
		domains[normalizeDomain(domain)] = config
	}

	return &PresetService{generic: generic, domains: domains}, nil
}

func toConfig(table map[string][]string) (adaptext.ExtractionConfig, error) {
	config := make(adaptext.ExtractionConfig, len(table))
	for key, selectors := range table {
		ct := adaptext.ContentType(key)
		if !ct.Valid() {
			return nil, adaptext.Errorf(adaptext.EINVALID, "unknown content type %q in presets", key)
		}
		config[ct] = append([]string(nil), selectors...)
	}
	return config, nil
}

// ConfigForDomain returns the preset config for a domain.
// Domains match with or without a leading "www.".
func (s *PresetService) ConfigForDomain(domain string) (adaptext.ExtractionConfig, bool) {
	config, ok := s.domains[normalizeDomain(domain)]
	if !ok {
		return nil, false
	}
	return config.Clone(), true
}

// GenericConfig returns the fallback config used for unknown domains.
func (s *PresetService) GenericConfig() adaptext.ExtractionConfig {
	return s.generic.Clone()
}

func normalizeDomain(domain string) string {
	return strings.TrimPrefix(strings.ToLower(domain), "www.")
}
