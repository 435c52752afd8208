package blog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/betterengineer/blog/content"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

const postColumns = `slug, title, date, lastmod, tags, summary, body, images, authors, reading_minutes, draft`

// Store wraps the SQLite content index built from the markdown collection.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while a resync writes; the busy timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    lastmod TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    body TEXT NOT NULL,
    images TEXT NOT NULL DEFAULT '',
    authors TEXT NOT NULL DEFAULT '',
    reading_minutes INTEGER NOT NULL DEFAULT 1,
    draft INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date);
`)
	return err
}

// SyncPosts replaces the whole index with posts in a single transaction.
func (s *Store) SyncPosts(ctx context.Context, posts []content.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM posts`); err != nil {
		return fmt.Errorf("clear posts: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, p := range posts {
		if _, err := stmt.ExecContext(ctx, postArgs(p)...); err != nil {
			return fmt.Errorf("insert %s: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

// ListPosts returns all non-draft posts, newest first. If tag is non-empty
// only posts carrying that tag are returned.
func (s *Store) ListPosts(tag string) ([]content.Post, error) {
	posts, err := s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE draft = 0 ORDER BY date DESC, slug ASC`)
	if err != nil || tag == "" {
		return posts, err
	}
	return content.FilterByTag(posts, tag), nil
}

// ListDrafts returns only draft posts, newest first.
func (s *Store) ListDrafts() ([]content.Post, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE draft = 1 ORDER BY date DESC, slug ASC`)
}

// GetPost returns a single non-draft post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND draft = 0`, slug))
}

// GetPostAny returns a post by slug regardless of draft status.
func (s *Store) GetPostAny(slug string) (content.Post, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// TagCount is a tag with the number of published posts carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// ListTags returns tag slugs of published posts with counts, most used
// first, ties in alphabetical order.
func (s *Store) ListTags() ([]TagCount, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE draft = 0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			counts[content.TagSlug(t)]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		result = append(result, TagCount{Tag: t, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Tag < result[j].Tag
	})
	return result, nil
}

func (s *Store) queryPosts(query string, args ...any) ([]content.Post, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []content.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (content.Post, error) {
	var p content.Post
	var tags, images, authors string
	var draft int
	if err := r.Scan(&p.Slug, &p.Title, &p.Date, &p.Lastmod, &tags, &p.Summary, &p.Body, &images, &authors, &p.ReadingMinutes, &draft); err != nil {
		return content.Post{}, err
	}
	p.Tags = ParseTags(tags)
	p.Images = splitList(images)
	p.Authors = splitList(authors)
	p.Draft = draft == 1
	return p, nil
}

func postArgs(p content.Post) []any {
	draft := 0
	if p.Draft {
		draft = 1
	}
	return []any{
		p.Slug, p.Title, p.Date, p.Lastmod, joinTags(p.Tags), p.Summary, p.Body,
		strings.Join(p.Images, "\n"), strings.Join(p.Authors, "\n"), p.ReadingMinutes, draft,
	}
}

// joinTags stores tags as ",a,b,". Commas inside a tag are dropped.
func joinTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(strings.ReplaceAll(t, ",", " ")); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return "," + strings.Join(cleaned, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
