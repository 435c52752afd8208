package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/betterengineer/blog/markdown"
)

const (
	blogDir      = "blog"
	authorsDir   = "authors"
	projectsFile = "projects.yaml"
	dateLayout   = "2006-01-02"
)

var dateLayouts = []string{
	dateLayout,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

const frontMatterDelim = "---"

// stringList accepts either a scalar or a sequence in front matter.
type stringList []string

func (l *stringList) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		if v := strings.TrimSpace(n.Value); v != "" {
			*l = stringList{v}
		}
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := n.Decode(&out); err != nil {
			return err
		}
		*l = out
		return nil
	}
	return fmt.Errorf("line %d: expected string or list", n.Line)
}

type postFrontMatter struct {
	Title   string     `yaml:"title"`
	Date    string     `yaml:"date"`
	Lastmod string     `yaml:"lastmod"`
	Tags    stringList `yaml:"tags"`
	Draft   bool       `yaml:"draft"`
	Summary string     `yaml:"summary"`
	Images  stringList `yaml:"images"`
	Authors stringList `yaml:"authors"`
}

type authorFrontMatter struct {
	Name       string `yaml:"name"`
	Avatar     string `yaml:"avatar"`
	Occupation string `yaml:"occupation"`
	Company    string `yaml:"company"`
	Email      string `yaml:"email"`
	Twitter    string `yaml:"twitter"`
	LinkedIn   string `yaml:"linkedin"`
	GitHub     string `yaml:"github"`
}

// LoadDir loads the collection rooted at dir.
func LoadDir(dir string, r *markdown.Renderer) (*Collection, error) {
	return Load(os.DirFS(dir), r)
}

// Load reads blog posts, authors and projects from fsys. Posts come back
// sorted newest first, drafts included. Missing authors/ or projects.yaml are
// not errors.
func Load(fsys fs.FS, r *markdown.Renderer) (*Collection, error) {
	if r == nil {
		r = markdown.NewRenderer()
	}
	c := &Collection{}

	err := fs.WalkDir(fsys, blogDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(p) {
			return nil
		}
		post, err := loadPost(fsys, p, r)
		if err != nil {
			return err
		}
		c.Posts = append(c.Posts, post)
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	SortPosts(c.Posts)

	entries, err := fs.ReadDir(fsys, authorsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !isMarkdown(e.Name()) {
			continue
		}
		a, err := loadAuthor(fsys, path.Join(authorsDir, e.Name()), r)
		if err != nil {
			return nil, err
		}
		c.Authors = append(c.Authors, a)
	}

	raw, err := fs.ReadFile(fsys, projectsFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &c.Projects); err != nil {
			return nil, fmt.Errorf("content: %s: %w", projectsFile, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return c, nil
}

func loadPost(fsys fs.FS, p string, r *markdown.Renderer) (Post, error) {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Post{}, err
	}
	var fm postFrontMatter
	body, err := parseFrontMatter(raw, &fm)
	if err != nil {
		return Post{}, fmt.Errorf("content: %s: %w", p, err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, fmt.Errorf("content: %s: missing title", p)
	}
	date, err := normalizeDate(fm.Date)
	if err != nil {
		return Post{}, fmt.Errorf("content: %s: date: %w", p, err)
	}
	var lastmod string
	if fm.Lastmod != "" {
		if lastmod, err = normalizeDate(fm.Lastmod); err != nil {
			return Post{}, fmt.Errorf("content: %s: lastmod: %w", p, err)
		}
	}
	html, err := r.Render(body)
	if err != nil {
		return Post{}, fmt.Errorf("content: %s: render: %w", p, err)
	}
	return Post{
		Slug:           slugFromPath(p),
		Title:          strings.TrimSpace(fm.Title),
		Date:           date,
		Lastmod:        lastmod,
		Tags:           []string(fm.Tags),
		Draft:          fm.Draft,
		Summary:        strings.TrimSpace(fm.Summary),
		Body:           html,
		Images:         []string(fm.Images),
		Authors:        []string(fm.Authors),
		ReadingMinutes: markdown.ReadingMinutes(string(body)),
		Path:           p,
	}, nil
}

func loadAuthor(fsys fs.FS, p string, r *markdown.Renderer) (Author, error) {
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Author{}, err
	}
	var fm authorFrontMatter
	body, err := parseFrontMatter(raw, &fm)
	if err != nil {
		return Author{}, fmt.Errorf("content: %s: %w", p, err)
	}
	if strings.TrimSpace(fm.Name) == "" {
		return Author{}, fmt.Errorf("content: %s: missing name", p)
	}
	html, err := r.Render(body)
	if err != nil {
		return Author{}, fmt.Errorf("content: %s: render: %w", p, err)
	}
	return Author{
		Slug:       strings.TrimSuffix(path.Base(p), path.Ext(p)),
		Name:       fm.Name,
		Avatar:     fm.Avatar,
		Occupation: fm.Occupation,
		Company:    fm.Company,
		Email:      fm.Email,
		Twitter:    fm.Twitter,
		LinkedIn:   fm.LinkedIn,
		GitHub:     fm.GitHub,
		Body:       html,
	}, nil
}

// parseFrontMatter decodes the leading ---/--- block into v and returns the
// remaining body.
func parseFrontMatter(raw []byte, v any) ([]byte, error) {
	text := strings.TrimPrefix(string(raw), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return nil, errors.New("missing front matter")
	}
	rest := text[len(frontMatterDelim)+1:]
	var fm, body string
	if strings.HasPrefix(rest, frontMatterDelim+"\n") {
		body = rest[len(frontMatterDelim)+1:]
	} else {
		end := strings.Index(rest, "\n"+frontMatterDelim)
		if end < 0 {
			return nil, errors.New("unterminated front matter")
		}
		fm = rest[:end]
		body = strings.TrimPrefix(rest[end+1+len(frontMatterDelim):], "\n")
	}
	if err := yaml.Unmarshal([]byte(fm), v); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}
	return []byte(body), nil
}

func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("missing")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

func slugFromPath(p string) string {
	p = strings.TrimPrefix(p, blogDir+"/")
	return strings.TrimSuffix(p, path.Ext(p))
}
