package content

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"blog/first.md": {Data: []byte(`---
title: First Post
date: 2024-01-01
tags: [go, web]
summary: The first one.
---
Hello **world**.
`)},
		"blog/second.mdx": {Data: []byte(`---
title: Second Post
date: '2024-03-05T10:00:00Z'
lastmod: 2024-04-01
tags: databases
images:
  - /static/images/second.png
draft: true
---
Body.
`)},
		"blog/nested/third.md": {Data: []byte("---\ntitle: Third\ndate: 2024-02-10\n---\n")},
		"blog/notes.txt":       {Data: []byte("ignored")},
		"authors/default.md": {Data: []byte(`---
name: Jane Doe
occupation: Backend Engineer
github: https://github.com/janedoe
---
I write about backends.
`)},
		"projects.yaml": {Data: []byte(`- title: Queue
  description: A queue.
  href: https://github.com/janedoe/queue
`)},
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(testFS(), nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Posts) != 3 {
		t.Fatalf("Posts count = %d, want 3", len(c.Posts))
	}
	wantOrder := []string{"second", "nested/third", "first"}
	for i, slug := range wantOrder {
		if c.Posts[i].Slug != slug {
			t.Errorf("Posts[%d].Slug = %q, want %q", i, c.Posts[i].Slug, slug)
		}
	}

	second := c.Posts[0]
	if second.Date != "2024-03-05" {
		t.Errorf("Date = %q, want %q", second.Date, "2024-03-05")
	}
	if second.Lastmod != "2024-04-01" {
		t.Errorf("Lastmod = %q, want %q", second.Lastmod, "2024-04-01")
	}
	if !second.Draft {
		t.Error("second post should be a draft")
	}
	if len(second.Tags) != 1 || second.Tags[0] != "databases" {
		t.Errorf("Tags = %v, want [databases]", second.Tags)
	}
	if len(second.Images) != 1 || second.Images[0] != "/static/images/second.png" {
		t.Errorf("Images = %v", second.Images)
	}

	first := c.Posts[2]
	if !strings.Contains(first.Body, "<strong>world</strong>") {
		t.Errorf("Body = %q, want rendered markdown", first.Body)
	}
	if first.Tags == nil || len(first.Tags) != 2 {
		t.Errorf("Tags = %v, want [go web]", first.Tags)
	}
	if first.ReadingMinutes != 1 {
		t.Errorf("ReadingMinutes = %d, want 1", first.ReadingMinutes)
	}

	third := c.Posts[1]
	if third.Tags != nil {
		t.Errorf("Tags = %v, want nil when front matter has none", third.Tags)
	}

	if len(c.Authors) != 1 || c.Authors[0].Slug != "default" || c.Authors[0].Name != "Jane Doe" {
		t.Errorf("Authors = %+v", c.Authors)
	}
	if len(c.Projects) != 1 || c.Projects[0].Title != "Queue" {
		t.Errorf("Projects = %+v", c.Projects)
	}
}

func TestLoadEmptyFS(t *testing.T) {
	c, err := Load(fstest.MapFS{}, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Posts) != 0 || len(c.Authors) != 0 || len(c.Projects) != 0 {
		t.Errorf("expected empty collection, got %+v", c)
	}
}

func TestLoadErrorsNameFile(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no front matter", "just text", "missing front matter"},
		{"no title", "---\ndate: 2024-01-01\n---\n", "missing title"},
		{"bad date", "---\ntitle: X\ndate: tomorrow\n---\n", "unrecognized date"},
		{"unterminated", "---\ntitle: X\n", "unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"blog/broken.md": {Data: []byte(tt.data)}}, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "blog/broken.md") || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want file name and %q", err, tt.want)
			}
		})
	}
}

func TestPublishedAndLookup(t *testing.T) {
	posts := []Post{{Slug: "a"}, {Slug: "b", Draft: true}, {Slug: "c"}}
	pub := Published(posts)
	if len(pub) != 2 || pub[0].Slug != "a" || pub[1].Slug != "c" {
		t.Errorf("Published = %+v", pub)
	}
	if _, err := PostBySlug(pub, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("PostBySlug(draft) err = %v, want ErrNotFound", err)
	}
	if p, err := PostBySlug(posts, "c"); err != nil || p.Slug != "c" {
		t.Errorf("PostBySlug = %+v, %v", p, err)
	}
	if _, err := AuthorBySlug(nil, "default"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AuthorBySlug err = %v, want ErrNotFound", err)
	}
}

func TestPostModifiedAndURL(t *testing.T) {
	p := Post{Slug: "foo", Date: "2024-01-01"}
	if p.Modified() != "2024-01-01" {
		t.Errorf("Modified = %q", p.Modified())
	}
	p.Lastmod = "2024-02-01"
	if p.Modified() != "2024-02-01" {
		t.Errorf("Modified = %q", p.Modified())
	}
	if got := p.URL("https://example.dev/"); got != "https://example.dev/blog/foo" {
		t.Errorf("URL = %q", got)
	}
}

func TestTagSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Go", "go"},
		{"  System Design ", "system-design"},
		{"C++", "c++"},
		{"node.js", "node.js"},
		{"a / b", "a-b"},
	}
	for _, tt := range tests {
		if got := TagSlug(tt.input); got != tt.expected {
			t.Errorf("TagSlug(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTagCountsAndFilter(t *testing.T) {
	posts := []Post{
		{Slug: "a", Tags: []string{"Go", "Web"}},
		{Slug: "b", Tags: []string{"go"}},
		{Slug: "c", Tags: []string{"rust"}},
	}
	counts := TagCounts(posts)
	if counts["go"] != 2 || counts["web"] != 1 || counts["rust"] != 1 {
		t.Errorf("TagCounts = %v", counts)
	}
	if got := FilterByTag(posts, "GO"); len(got) != 2 {
		t.Errorf("FilterByTag count = %d, want 2", len(got))
	}
	related := RelatedPosts(posts[0], posts)
	if len(related) != 1 || related[0].Slug != "b" {
		t.Errorf("RelatedPosts = %+v", related)
	}
}

func TestSearch(t *testing.T) {
	posts := []Post{
		{Slug: "a", Title: "Scaling Postgres"},
		{Slug: "b", Summary: "notes on postgres replication"},
		{Slug: "c", Tags: []string{"PostgreSQL"}},
		{Slug: "d", Title: "Unrelated"},
	}
	if got := Search(posts, "postgres"); len(got) != 3 {
		t.Errorf("Search count = %d, want 3", len(got))
	}
	if got := Search(posts, "  "); got != nil {
		t.Errorf("Search(blank) = %+v, want nil", got)
	}
}

func TestPaginate(t *testing.T) {
	posts := make([]Post, 12)
	tests := []struct {
		page      int
		ok        bool
		count     int
		hasPrev   bool
		hasNext   bool
		totalPage int
	}{
		{0, false, 0, false, false, 0},
		{1, true, 5, false, true, 3},
		{2, true, 5, true, true, 3},
		{3, true, 2, true, false, 3},
		{4, false, 0, false, false, 0},
	}
	for _, tt := range tests {
		got, ok := Paginate(posts, tt.page, PostsPerPage)
		if ok != tt.ok {
			t.Errorf("Paginate(page %d) ok = %v, want %v", tt.page, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if len(got.Posts) != tt.count {
			t.Errorf("Paginate(page %d) count = %d, want %d", tt.page, len(got.Posts), tt.count)
		}
		if got.Pagination.TotalPages != tt.totalPage {
			t.Errorf("TotalPages = %d, want %d", got.Pagination.TotalPages, tt.totalPage)
		}
		if got.Pagination.HasPrev() != tt.hasPrev || got.Pagination.HasNext() != tt.hasNext {
			t.Errorf("Paginate(page %d) prev/next = %v/%v", tt.page, got.Pagination.HasPrev(), got.Pagination.HasNext())
		}
	}

	empty, ok := Paginate(nil, 1, PostsPerPage)
	if !ok || empty.Pagination.TotalPages != 1 || len(empty.Posts) != 0 {
		t.Errorf("Paginate(nil) = %+v, %v", empty, ok)
	}
}
