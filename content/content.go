// Package content loads the blog's markdown collection: posts, author
// profiles and the projects list.
package content

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("content: not found")

// Post is a blog post with its front matter and rendered body.
type Post struct {
	Slug           string
	Title          string
	Date           string // 2006-01-02
	Lastmod        string
	Tags           []string
	Draft          bool
	Summary        string
	Body           string // sanitized HTML
	Images         []string
	Authors        []string
	ReadingMinutes int
	Path           string // source file, relative to the content dir
}

// URL returns the canonical post URL under siteURL.
func (p Post) URL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/blog/" + p.Slug
}

// Link is the site-relative post path.
func (p Post) Link() string {
	return "/blog/" + p.Slug
}

// Modified returns Lastmod, falling back to Date.
func (p Post) Modified() string {
	if p.Lastmod != "" {
		return p.Lastmod
	}
	return p.Date
}

// Author is an author profile page.
type Author struct {
	Slug       string
	Name       string
	Avatar     string
	Occupation string
	Company    string
	Email      string
	Twitter    string
	LinkedIn   string
	GitHub     string
	Body       string
}

// Project is an entry on the projects page.
type Project struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Href        string `yaml:"href"`
	ImgSrc      string `yaml:"imgSrc"`
}

// Collection is everything loaded from a content directory.
type Collection struct {
	Posts    []Post
	Authors  []Author
	Projects []Project
}

// SortPosts orders posts newest first; equal dates fall back to slug order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Published returns the posts that are not drafts, keeping order.
func Published(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			out = append(out, p)
		}
	}
	return out
}

// PostBySlug finds a post by slug.
func PostBySlug(posts []Post, slug string) (Post, error) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// AuthorBySlug finds an author by slug.
func AuthorBySlug(authors []Author, slug string) (Author, error) {
	for _, a := range authors {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Author{}, ErrNotFound
}

// TagSlug normalizes a tag for comparison and URLs.
func TagSlug(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var b strings.Builder
	prev := false
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '+', r == '#':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TagCounts counts posts per normalized tag.
func TagCounts(posts []Post) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, t := range p.Tags {
			if s := TagSlug(t); s != "" {
				counts[s]++
			}
		}
	}
	return counts
}

// FilterByTag returns posts carrying tag, compared by TagSlug.
func FilterByTag(posts []Post, tag string) []Post {
	want := TagSlug(tag)
	var out []Post
	for _, p := range posts {
		for _, t := range p.Tags {
			if TagSlug(t) == want {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// RelatedPosts returns posts other than current that share a tag with it.
func RelatedPosts(current Post, posts []Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if s := TagSlug(t); s != "" {
			tagSet[s] = struct{}{}
		}
	}
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[TagSlug(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// Search matches q case-insensitively against title, summary and tags.
func Search(posts []Post, q string) []Post {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	var out []Post
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Summary), q) {
			out = append(out, p)
			continue
		}
		for _, t := range p.Tags {
			if strings.Contains(strings.ToLower(t), q) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
