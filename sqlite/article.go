package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/adaptext"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ adaptext.ArticleService = (*ArticleService)(nil)

// ArticleService implements adaptext.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// CreateArticle stores a new article.
func (s *ArticleService) CreateArticle(ctx context.Context, article *adaptext.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	if article.ExtractedAt.IsZero() {
		article.ExtractedAt = time.Now().UTC()
	}

	images, err := encodeList(article.Images)
	if err != nil {
		return err
	}
	topics, err := encodeList(article.Topics)
	if err != nil {
		return err
	}
	organizations, err := encodeList(article.Organizations)
	if err != nil {
		return err
	}
	locations, err := encodeList(article.Locations)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles (id, url, domain, title, author, published, content, content_hash,
			images, topics, organizations, locations, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.URL, article.Domain, article.Title, article.Author, article.Published,
		article.Content, article.ContentHash, images, topics, organizations, locations,
		article.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*adaptext.Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, domain, title, author, published, content, content_hash,
			images, topics, organizations, locations, extracted_at
		FROM articles
		WHERE id = ?
	`, id)

	article, err := scanArticle(row.Scan)
	if err == sql.ErrNoRows {
		return nil, adaptext.Errorf(adaptext.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter adaptext.ArticleFilter) ([]*adaptext.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, url, domain, title, author, published, content, content_hash,
		images, topics, organizations, locations, extracted_at FROM articles WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY extracted_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*adaptext.Article
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return adaptext.Errorf(adaptext.ENOTFOUND, "article not found")
	}

	return nil
}

// scanArticle reads one article row via the given scan function.
func scanArticle(scan func(...any) error) (*adaptext.Article, error) {
	var article adaptext.Article
	var images, topics, organizations, locations, extractedAt string

	if err := scan(&article.ID, &article.URL, &article.Domain, &article.Title, &article.Author,
		&article.Published, &article.Content, &article.ContentHash,
		&images, &topics, &organizations, &locations, &extractedAt); err != nil {
		return nil, err
	}

	var err error
	if article.Images, err = decodeList(images); err != nil {
		return nil, err
	}
	if article.Topics, err = decodeList(topics); err != nil {
		return nil, err
	}
	if article.Organizations, err = decodeList(organizations); err != nil {
		return nil, err
	}
	if article.Locations, err = decodeList(locations); err != nil {
		return nil, err
	}

	article.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &article, nil
}

// encodeList serializes a string list as a JSON column value.
func encodeList(values []string) (string, error) {
	if values == nil {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

// decodeList deserializes a JSON column value into a string list.
func decodeList(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return values, nil
}
