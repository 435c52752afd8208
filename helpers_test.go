package blog

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Go & Rust: a comparison  ", "go-rust-a-comparison"},
		{"already-slugged", "already-slugged"},
		{"!!!", ""},
		{"Version 2.0", "version-2-0"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		expected string
	}{
		{"https://example.dev", nil, "https://example.dev"},
		{"https://example.dev/", nil, "https://example.dev"},
		{"https://example.dev", []string{"blog", "foo"}, "https://example.dev/blog/foo"},
		{"https://example.dev/sub", []string{"tags"}, "https://example.dev/sub/tags"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.expected {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.expected)
		}
	}
}
