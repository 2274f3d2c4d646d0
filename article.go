package adaptext

import (
	"context"
	"time"
)

// Article represents content extracted from a single page.
type Article struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Domain        string    `json:"domain"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Published     string    `json:"published"` // raw date text as found on the page
	Content       string    `json:"content"`   // Markdown
	ContentHash   string    `json:"contentHash"`
	Images        []string  `json:"images"`
	Topics        []string  `json:"topics"`
	Organizations []string  `json:"organizations"`
	Locations     []string  `json:"locations"`
	ExtractedAt   time.Time `json:"extractedAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.Domain == "" {
		return Errorf(EINVALID, "article domain required")
	}
	return nil
}

// ArticleService represents a service for managing extracted articles.
type ArticleService interface {
	// CreateArticle stores a new article.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID     *string `json:"id"`
	Domain *string `json:"domain"`
	URL    *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
