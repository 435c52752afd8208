package blog

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/betterengineer/blog/content"
	"github.com/betterengineer/blog/seo"
	"github.com/betterengineer/blog/views"
)

const defaultAuthor = "default"

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/static", a.Config.StaticDir)
	e.GET("/favicon.ico", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/og/:file", a.handleOGImage)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: a.metrics.registry,
	}))

	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlog)
	e.GET("/blog/page/:page", a.handleBlogPage)
	e.GET("/blog/*", a.handlePost)
	e.GET("/tags", a.handleTags)
	e.GET("/tags/:tag", a.handleTag)
	e.GET("/projects", a.handleProjects)
	e.GET("/about", a.handleAbout)
	e.GET("/search", a.handleSearch)

	if a.Config.PreviewEnabled() {
		e.GET("/admin", a.handleAdmin)
		e.POST("/admin/login", a.handleAdminLogin)
		e.POST("/admin/logout", handleAdminLogout)
		e.POST("/admin/reload", a.handleAdminReload)
	}
}

// page builds the layout model for the current request.
func (a *App) page(c echo.Context, meta seo.PageMetadata, data ...seo.StructuredData) views.Page {
	return views.Page{
		Site:   a.Site,
		Meta:   meta,
		JSONLD: data,
		Path:   c.Request().URL.Path,
		Admin:  IsAdmin(c),
	}
}

// meta composes metadata for a site page at path.
func (a *App) meta(title, description, path string, overrides ...seo.Override) seo.PageMetadata {
	return a.pageMeta(path, seo.PageSEOInput{
		Title:       title,
		Description: description,
		Overrides:   overrides,
	})
}

// pageMeta composes metadata from full page input, pinning the URL to path.
func (a *App) pageMeta(path string, in seo.PageSEOInput) seo.PageMetadata {
	in.URL = BuildURL(a.Site.SiteURL, path)
	return seo.GenPageMetadata(a.Site, in)
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	if len(posts) > content.PostsPerPage {
		posts = posts[:content.PostsPerPage]
	}
	meta := a.pageMeta("", homeSEO(a.Site))
	p := a.page(c, meta,
		seo.Website(a.Site, ""),
		seo.Person(a.Site),
		seo.Organization(a.Site),
	)
	return a.render(c, http.StatusOK, "home", a.Views.Home(p, posts))
}

func (a *App) handleBlog(c echo.Context) error {
	return a.renderBlogPage(c, 1)
}

func (a *App) handleBlogPage(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return echo.ErrNotFound
	}
	if n == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/blog")
	}
	return a.renderBlogPage(c, n)
}

func (a *App) renderBlogPage(c echo.Context, n int) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	pg, ok := content.Paginate(posts, n, content.PostsPerPage)
	if !ok {
		return echo.ErrNotFound
	}
	path := "/blog"
	in := blogSEO()
	if n > 1 {
		path = fmt.Sprintf("/blog/page/%d", n)
		in.Title = fmt.Sprintf("Blog - Page %d", n)
	}
	meta := a.pageMeta(path, in)
	l := views.ListData{
		Heading:    "All Posts",
		BasePath:   "/blog",
		Posts:      pg.Posts,
		Pagination: pg.Pagination,
	}
	return a.render(c, http.StatusOK, "list", a.Views.List(a.page(c, meta), l))
}

func (a *App) handlePost(c echo.Context) error {
	slug := strings.Trim(c.Param("*"), "/")
	if slug == "" {
		return echo.ErrNotFound
	}

	post, err := a.Cache.GetPost(slug)
	preview := false
	if errors.Is(err, ErrNotFound) && IsAdmin(c) {
		post, err = a.Store.GetPostAny(slug)
		preview = err == nil
	}
	if errors.Is(err, ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}

	authors := a.postAuthors(post)
	authorName := a.Site.Author
	if len(authors) > 0 && authors[0].Name != "" {
		authorName = authors[0].Name
	}

	var overrides []seo.Override
	if preview {
		overrides = append(overrides, seo.WithRobots(seo.NoIndex()))
	}
	meta := seo.GenBlogPostMetadata(a.Site, seo.BlogPostSEOInput{
		Title:       post.Title,
		Description: post.Summary,
		Tags:        post.Tags,
		Date:        post.Date,
		Lastmod:     post.Lastmod,
		Images:      a.absoluteImages(post.Images),
		Slug:        post.Slug,
		Author:      authorName,
		Overrides:   overrides,
	})

	var image string
	if len(post.Images) > 0 {
		image = absoluteURL(a.Site.SiteURL, post.Images[0])
	}
	ld := seo.BlogPosting(a.Site, seo.BlogPostingInput{
		Title:         post.Title,
		Description:   post.Summary,
		DatePublished: post.Date,
		DateModified:  post.Lastmod,
		Author:        authorName,
		URL:           post.URL(a.Site.SiteURL),
		Image:         image,
		Tags:          post.Tags,
	})

	d := views.PostData{
		Post:    post,
		Related: content.RelatedPosts(post, posts),
		Authors: authors,
		Preview: preview,
	}
	return a.render(c, http.StatusOK, "post", a.Views.Post(a.page(c, meta, ld), d))
}

// postAuthors resolves the post's author slugs, defaulting to "default".
func (a *App) postAuthors(post content.Post) []content.Author {
	all, _ := a.contentSnapshot()
	slugs := post.Authors
	if len(slugs) == 0 {
		slugs = []string{defaultAuthor}
	}
	var out []content.Author
	for _, s := range slugs {
		if au, err := content.AuthorBySlug(all, s); err == nil {
			out = append(out, au)
		}
	}
	return out
}

func (a *App) absoluteImages(images []string) []string {
	if len(images) == 0 {
		return nil
	}
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = absoluteURL(a.Site.SiteURL, img)
	}
	return out
}

func (a *App) handleTags(c echo.Context) error {
	counts, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	tags := make([]views.Tag, 0, len(counts))
	for _, tc := range counts {
		tags = append(tags, views.Tag{Name: tc.Tag, Slug: tc.Tag, Count: tc.Count})
	}
	meta := a.meta("Tags", "Things I blog about", "/tags")
	return a.render(c, http.StatusOK, "tags", a.Views.Tags(a.page(c, meta), tags))
}

func (a *App) handleTag(c echo.Context) error {
	tag := content.TagSlug(c.Param("tag"))
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return echo.ErrNotFound
	}
	n := 1
	if q := c.QueryParam("page"); q != "" {
		if n, err = strconv.Atoi(q); err != nil {
			return echo.ErrNotFound
		}
	}
	pg, ok := content.Paginate(posts, n, content.PostsPerPage)
	if !ok {
		return echo.ErrNotFound
	}
	meta := a.meta(tag, fmt.Sprintf("%s %s tagged content", a.Site.Title, tag), "/tags/"+tag)
	l := views.ListData{
		Heading:    tag,
		BasePath:   "/tags/" + tag,
		QueryPages: true,
		Posts:      pg.Posts,
		Pagination: pg.Pagination,
	}
	return a.render(c, http.StatusOK, "tag", a.Views.List(a.page(c, meta), l))
}

func (a *App) handleProjects(c echo.Context) error {
	_, projects := a.contentSnapshot()
	meta := a.meta("Projects", "Things I have built", "/projects")
	return a.render(c, http.StatusOK, "projects", a.Views.Projects(a.page(c, meta), projects))
}

func (a *App) handleAbout(c echo.Context) error {
	authors, _ := a.contentSnapshot()
	author, err := content.AuthorBySlug(authors, defaultAuthor)
	if err != nil {
		author = content.Author{Slug: defaultAuthor, Name: a.Site.Author, Occupation: a.Site.AuthorJobTitle, Body: a.Site.AuthorBio}
	}
	meta := a.pageMeta("/about", aboutSEO(a.Site, author))
	p := a.page(c, meta, seo.Person(a.Site))
	return a.render(c, http.StatusOK, "about", a.Views.About(p, author))
}

func (a *App) handleSearch(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	var results []content.Post
	if q != "" {
		posts, err := a.Cache.ListPosts("")
		if err != nil {
			return err
		}
		results = content.Search(posts, q)
	}
	// Result pages are thin, duplicate content.
	meta := a.meta("Search", "", "/search", seo.WithRobots(seo.NoIndex()))
	return a.render(c, http.StatusOK, "search", a.Views.Search(a.page(c, meta), q, results))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.ico")
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("\nSitemap: " + BuildURL(a.Site.SiteURL, "sitemap.xml") + "\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) errorPage(c echo.Context, title string) views.Page {
	meta := a.meta(title, "", c.Request().URL.Path, seo.WithRobots(seo.NoIndex()))
	return a.page(c, meta)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.render(c, http.StatusNotFound, "not_found", a.Views.NotFound(a.errorPage(c, "Page Not Found")))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
		_ = a.render(c, code, "server_error", a.Views.ServerError(a.errorPage(c, "Server Error")))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
