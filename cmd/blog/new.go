package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/betterengineer/blog"
	"github.com/betterengineer/blog/scaffold"
)

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	tags := fs.String("tags", "", "comma-separated tags")
	summary := fs.String("summary", "", "one-line summary")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if title == "" {
		return errors.New("usage: blog new [-tags a,b] [-summary s] <title>")
	}
	path, err := createPost(cfg.ContentDir, title, splitTags(*tags), *summary, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("  created %s\n", path)
	return nil
}

// createPost writes a draft for title under dir/blog and returns its path.
// It refuses to overwrite an existing post.
func createPost(dir, title string, tags []string, summary string, now time.Time) (string, error) {
	slug := blog.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from %q", title)
	}
	blogDir := filepath.Join(dir, "blog")
	if err := os.MkdirAll(blogDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(blogDir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("post %q already exists", path)
		}
		return "", err
	}
	defer f.Close()

	err = scaffold.WritePost(f, scaffold.Post{
		Title:   title,
		Date:    now.Format("2006-01-02"),
		Tags:    tags,
		Summary: summary,
	})
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
