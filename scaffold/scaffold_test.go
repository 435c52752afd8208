package scaffold

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/betterengineer/blog/content"
)

func TestWritePostLoadsAsDraft(t *testing.T) {
	var buf bytes.Buffer
	err := WritePost(&buf, Post{
		Title:   `Queues: "at least once"`,
		Date:    "2024-05-01",
		Tags:    []string{"Distributed Systems", "go"},
		Summary: "Delivery guarantees.",
	})
	if err != nil {
		t.Fatalf("WritePost failed: %v", err)
	}

	c, err := content.Load(fstest.MapFS{"blog/queues.md": {Data: buf.Bytes()}}, nil)
	if err != nil {
		t.Fatalf("generated file does not load: %v\n%s", err, buf.String())
	}
	if len(c.Posts) != 1 {
		t.Fatalf("Posts count = %d, want 1", len(c.Posts))
	}
	p := c.Posts[0]
	if p.Title != `Queues: "at least once"` {
		t.Errorf("Title = %q", p.Title)
	}
	if !p.Draft {
		t.Error("new posts should be drafts")
	}
	if p.Date != "2024-05-01" {
		t.Errorf("Date = %q", p.Date)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "Distributed Systems" {
		t.Errorf("Tags = %v", p.Tags)
	}
}

func TestWritePostWithoutTags(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePost(&buf, Post{Title: "Bare", Date: "2024-05-01"}); err != nil {
		t.Fatalf("WritePost failed: %v", err)
	}
	c, err := content.Load(fstest.MapFS{"blog/bare.md": {Data: buf.Bytes()}}, nil)
	if err != nil {
		t.Fatalf("generated file does not load: %v\n%s", err, buf.String())
	}
	if c.Posts[0].Tags == nil || len(c.Posts[0].Tags) != 0 {
		t.Errorf("Tags = %#v, want empty list", c.Posts[0].Tags)
	}
}

func TestWritePostRequiresTitle(t *testing.T) {
	if err := WritePost(&bytes.Buffer{}, Post{Date: "2024-05-01"}); err == nil {
		t.Fatal("expected error for missing title")
	}
}
