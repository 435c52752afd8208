// Package blog is a personal technical blog built with Go, Echo, and templ.
// Markdown content is loaded at startup into a SQLite index, cached in
// memory and served with full SEO metadata, JSON-LD, a sitemap and a feed.
//
// Page markup comes from the ViewFuncs struct, so a site can swap any view
// while the App keeps the handler logic, middleware and storage.
package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/betterengineer/blog/content"
	"github.com/betterengineer/blog/seo"
	"github.com/betterengineer/blog/views"
)

// ViewFuncs holds the components the App calls when rendering pages.
type ViewFuncs struct {
	Home           func(p views.Page, posts []content.Post) templ.Component
	List           func(p views.Page, l views.ListData) templ.Component
	Post           func(p views.Page, d views.PostData) templ.Component
	Tags           func(p views.Page, tags []views.Tag) templ.Component
	Projects       func(p views.Page, projects []content.Project) templ.Component
	About          func(p views.Page, a content.Author) templ.Component
	Search         func(p views.Page, q string, results []content.Post) templ.Component
	AdminLogin     func(p views.Page, showError bool, csrfToken string) templ.Component
	AdminDashboard func(p views.Page, drafts []content.Post, csrfToken string) templ.Component
	NotFound       func(p views.Page) templ.Component
	ServerError    func(p views.Page) templ.Component
}

// DefaultViews returns the views shipped in package views.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		List:           views.List,
		Post:           views.Post,
		Tags:           views.Tags,
		Projects:       views.Projects,
		About:          views.About,
		Search:         views.Search,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// withDefaults fills every nil view from DefaultViews.
func (v ViewFuncs) withDefaults() ViewFuncs {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.List == nil {
		v.List = d.List
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.Tags == nil {
		v.Tags = d.Tags
	}
	if v.Projects == nil {
		v.Projects = d.Projects
	}
	if v.About == nil {
		v.About = d.About
	}
	if v.Search == nil {
		v.Search = d.Search
	}
	if v.AdminLogin == nil {
		v.AdminLogin = d.AdminLogin
	}
	if v.AdminDashboard == nil {
		v.AdminDashboard = d.AdminDashboard
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
	return v
}

// App wires together the content index, cache, handlers, middleware and views.
type App struct {
	Config SiteConfig
	Site   seo.SiteMetadata
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Log    *zap.Logger

	// authors and projects are replaced together on Reload.
	mu       sync.RWMutex
	authors  []content.Author
	projects []content.Project

	loginLimiter *LoginLimiter
	images       *ogImageCache
	metrics      *metrics
	customRoutes []func(*App)
}

// New creates an App with the given configuration and views. Nil views fall
// back to DefaultViews.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:  cfg,
		Echo:    echo.New(),
		Views:   v.withDefaults(),
		metrics: newMetrics(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	a.Site = a.Config.SiteMetadata()
	return a
}

// Setup opens the store, loads and indexes the content directory, and
// registers middleware and routes. Start calls it; tests call it directly
// and drive a.Echo with httptest.
func (a *App) Setup(ctx context.Context) error {
	if a.Log == nil {
		l, err := NewLogger(a.Config.LogLevel)
		if err != nil {
			return fmt.Errorf("blog: init logger: %w", err)
		}
		a.Log = l
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("blog: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if err := a.Reload(ctx); err != nil {
		return err
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.images = newOGImageCache(filepath.Join(a.Config.StaticDir, imagesSubdir))

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Reload re-reads the content directory and replaces the index.
func (a *App) Reload(ctx context.Context) error {
	coll, err := content.LoadDir(a.Config.ContentDir, nil)
	if err != nil {
		return fmt.Errorf("blog: load content: %w", err)
	}
	if err := a.Store.SyncPosts(ctx, coll.Posts); err != nil {
		return fmt.Errorf("blog: sync index: %w", err)
	}
	a.Cache.Invalidate()

	a.mu.Lock()
	a.authors = coll.Authors
	a.projects = coll.Projects
	a.mu.Unlock()

	drafts := len(coll.Posts) - len(content.Published(coll.Posts))
	a.metrics.contentEntries.WithLabelValues("post").Set(float64(len(coll.Posts) - drafts))
	a.metrics.contentEntries.WithLabelValues("draft").Set(float64(drafts))
	a.metrics.contentEntries.WithLabelValues("author").Set(float64(len(coll.Authors)))
	a.metrics.contentEntries.WithLabelValues("project").Set(float64(len(coll.Projects)))
	a.Log.Info("content loaded",
		zap.String("dir", a.Config.ContentDir),
		zap.Int("posts", len(coll.Posts)),
		zap.Int("drafts", drafts),
		zap.Int("authors", len(coll.Authors)),
		zap.Int("projects", len(coll.Projects)),
	)
	return nil
}

// Start sets the App up and serves until ctx is cancelled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("server listening", zap.String("addr", a.Config.Addr), zap.String("site", a.Site.SiteURL))
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(shutdownCtx)
}

// Close releases the store and background workers.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func (a *App) contentSnapshot() ([]content.Author, []content.Project) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.authors, a.projects
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
