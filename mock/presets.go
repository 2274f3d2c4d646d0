package mock

import "github.com/fwojciec/adaptext"

var _ adaptext.PresetService = (*PresetService)(nil)

// PresetService is a mock implementation of adaptext.PresetService.
type PresetService struct {
	ConfigForDomainFn func(domain string) (adaptext.ExtractionConfig, bool)
	GenericConfigFn   func() adaptext.ExtractionConfig
}

func (s *PresetService) ConfigForDomain(domain string) (adaptext.ExtractionConfig, bool) {
	return s.ConfigForDomainFn(domain)
}

func (s *PresetService) GenericConfig() adaptext.ExtractionConfig {
	return s.GenericConfigFn()
}
