package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/betterengineer/blog/content"
)

func TestCreatePost(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	path, err := createPost(dir, "Tuning SQLite for Reads", []string{"databases"}, "WAL and friends.", now)
	if err != nil {
		t.Fatalf("createPost failed: %v", err)
	}
	if want := filepath.Join(dir, "blog", "tuning-sqlite-for-reads.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	c, err := content.LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(c.Posts) != 1 {
		t.Fatalf("Posts count = %d, want 1", len(c.Posts))
	}
	p := c.Posts[0]
	if p.Slug != "tuning-sqlite-for-reads" || !p.Draft || p.Date != "2024-05-01" || p.Summary != "WAL and friends." {
		t.Errorf("post = %+v", p)
	}

	if _, err := createPost(dir, "Tuning SQLite for Reads", nil, "", now); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second createPost err = %v, want already exists", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("original file missing: %v", err)
	}
}

func TestCreatePostRejectsEmptySlug(t *testing.T) {
	if _, err := createPost(t.TempDir(), "!!!", nil, "", time.Now()); err == nil {
		t.Fatal("expected error for title without slug characters")
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" go, ,databases ,")
	if len(got) != 2 || got[0] != "go" || got[1] != "databases" {
		t.Errorf("splitTags = %v", got)
	}
	if splitTags("") != nil {
		t.Error("splitTags(\"\") should be nil")
	}
}
