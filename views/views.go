// Package views holds the HTML components the blog renders. The outer
// layout is a templ component that owns <head>; page bodies are embedded
// html/template files adapted with templ.FromGoHTML.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/betterengineer/blog/content"
	"github.com/betterengineer/blog/seo"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.New("views").Funcs(template.FuncMap{
	"safe":       func(s string) template.HTML { return template.HTML(s) },
	"tagSlug":    content.TagSlug,
	"formatDate": FormatDate,
	"year":       func() int { return time.Now().Year() },
}).ParseFS(templatesFS, "templates/*.html"))

// Page is what every view needs to render the layout.
type Page struct {
	Site   seo.SiteMetadata
	Meta   seo.PageMetadata
	JSONLD []seo.StructuredData
	Path   string // request path, used to mark the active nav link
	Admin  bool
}

// Tag is a tag with its slug and number of published posts.
type Tag struct {
	Name  string
	Slug  string
	Count int
}

// ListData is a paginated post listing.
type ListData struct {
	Heading    string
	BasePath   string // "/blog" or "/tags/go"
	QueryPages bool   // pages addressed as ?page=N instead of /page/N
	Posts      []content.Post
	Pagination content.Pagination
}

// PageURL returns the URL of page n of the listing.
func (l ListData) PageURL(n int) string {
	if n <= 1 {
		return l.BasePath
	}
	if l.QueryPages {
		return fmt.Sprintf("%s?page=%d", l.BasePath, n)
	}
	return fmt.Sprintf("%s/page/%d", l.BasePath, n)
}

// PrevURL is the previous page URL.
func (l ListData) PrevURL() string { return l.PageURL(l.Pagination.CurrentPage - 1) }

// NextURL is the next page URL.
func (l ListData) NextURL() string { return l.PageURL(l.Pagination.CurrentPage + 1) }

// PostData is a single post page.
type PostData struct {
	Post    content.Post
	Related []content.Post
	Authors []content.Author
	Preview bool // draft served to an admin
}

// FormatDate turns 2006-01-02 into "January 2, 2006". Unparseable input is
// returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

// Layout wraps body in the document shell with SEO head tags and JSON-LD.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+template.HTMLEscapeString(htmlLang(p.Site.Locale))+`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`); err != nil {
			return err
		}
		if err := seo.Head(p.Meta).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<link rel="alternate" type="application/rss+xml" title="`+template.HTMLEscapeString(p.Site.Title)+`" href="/feed.xml"><link rel="stylesheet" href="/static/css/site.css">`); err != nil {
			return err
		}
		if err := seo.JSONLD(p.JSONLD...).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</head><body>"); err != nil {
			return err
		}
		if err := partial("header", p).Render(ctx, w); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		if err := partial("footer", p).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func htmlLang(locale string) string {
	if locale == "" {
		return "en"
	}
	return strings.ReplaceAll(locale, "_", "-")
}

func partial(name string, data any) templ.Component {
	return templ.FromGoHTML(pages.Lookup(name), data)
}

func page(p Page, name string, data any) templ.Component {
	return Layout(p, partial(name, data))
}

// Home lists the latest posts.
func Home(p Page, posts []content.Post) templ.Component {
	return page(p, "home", struct {
		Site  seo.SiteMetadata
		Posts []content.Post
	}{p.Site, posts})
}

// List renders a paginated listing of posts.
func List(p Page, l ListData) templ.Component {
	return page(p, "list", l)
}

// Post renders a single post with related posts.
func Post(p Page, d PostData) templ.Component {
	return page(p, "post", d)
}

// Tags renders the tag index.
func Tags(p Page, tags []Tag) templ.Component {
	return page(p, "tags", tags)
}

// Projects renders the projects grid.
func Projects(p Page, projects []content.Project) templ.Component {
	return page(p, "projects", projects)
}

// About renders an author profile.
func About(p Page, a content.Author) templ.Component {
	return page(p, "about", a)
}

// Search renders search results for q.
func Search(p Page, q string, results []content.Post) templ.Component {
	return page(p, "search", struct {
		Query   string
		Results []content.Post
	}{q, results})
}

// AdminLogin renders the draft preview login form.
func AdminLogin(p Page, showError bool, csrfToken string) templ.Component {
	return page(p, "admin_login", struct {
		ShowError bool
		CSRF      string
	}{showError, csrfToken})
}

// AdminDashboard lists drafts available for preview.
func AdminDashboard(p Page, drafts []content.Post, csrfToken string) templ.Component {
	return page(p, "admin_dashboard", struct {
		Drafts []content.Post
		CSRF   string
	}{drafts, csrfToken})
}

// NotFound renders the 404 page.
func NotFound(p Page) templ.Component {
	return page(p, "not_found", p)
}

// ServerError renders the 5xx page.
func ServerError(p Page) templ.Component {
	return page(p, "server_error", p)
}
