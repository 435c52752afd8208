package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/betterengineer/blog/seo"
)

// SiteConfig holds all configuration for the blog. Keys map to environment
// variables of the same name, or to lower-case keys in the config file.
type SiteConfig struct {
	Title         string   `mapstructure:"SITE_TITLE"`
	Description   string   `mapstructure:"SITE_DESCRIPTION"`
	URL           string   `mapstructure:"SITE_URL"`
	Author        string   `mapstructure:"SITE_AUTHOR"`
	Email         string   `mapstructure:"SITE_EMAIL"`
	SocialBanner  string   `mapstructure:"SOCIAL_BANNER"`
	Logo          string   `mapstructure:"SITE_LOGO"`
	GitHub        string   `mapstructure:"GITHUB_URL"`
	LinkedIn      string   `mapstructure:"LINKEDIN_URL"`
	Twitter       string   `mapstructure:"TWITTER_URL"`
	TwitterHandle string   `mapstructure:"TWITTER_HANDLE"`
	Locale        string   `mapstructure:"LOCALE"`
	JobTitle      string   `mapstructure:"AUTHOR_JOB_TITLE"`
	Bio           string   `mapstructure:"AUTHOR_BIO"`
	KnowsAbout    []string `mapstructure:"KNOWS_ABOUT"`

	Addr         string `mapstructure:"ADDR"`
	ContentDir   string `mapstructure:"CONTENT_DIR"`
	StaticDir    string `mapstructure:"STATIC_DIR"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`

	AdminPassword string `mapstructure:"ADMIN_PASSWORD"` // empty disables draft preview
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	CookieSecure  bool   `mapstructure:"COOKIE_SECURE"`

	PostCacheTTL time.Duration `mapstructure:"POST_CACHE_TTL"`
	LogLevel     string        `mapstructure:"LOG_LEVEL"`
}

var configDefaults = map[string]any{
	"SITE_TITLE":       "Better Engineer",
	"SITE_DESCRIPTION": "Backend software engineering, system architecture and Go.",
	"SITE_URL":         "http://localhost:3000",
	"SITE_AUTHOR":      "Blog Author",
	"SITE_EMAIL":       "",
	"SOCIAL_BANNER":    "/static/images/twitter-card.png",
	"SITE_LOGO":        "/static/images/logo.png",
	"GITHUB_URL":       "",
	"LINKEDIN_URL":     "",
	"TWITTER_URL":      "",
	"TWITTER_HANDLE":   "@betterengineer",
	"LOCALE":           "en_US",
	"AUTHOR_JOB_TITLE": "Software Engineer",
	"AUTHOR_BIO":       "Backend Software Engineer specializing in scalable systems and modern architecture",
	"KNOWS_ABOUT": []string{
		"Software Engineering",
		"Backend Development",
		"System Architecture",
		"Database Design",
		"API Development",
		"Go Programming",
		"Microservices",
	},
	"ADDR":           ":3000",
	"CONTENT_DIR":    "data",
	"STATIC_DIR":     "public",
	"DATABASE_PATH":  "data/index.db",
	"ADMIN_PASSWORD": "",
	"SESSION_SECRET": "",
	"COOKIE_SECURE":  false,
	"POST_CACHE_TTL": 5 * time.Minute,
	"LOG_LEVEL":      "info",
}

// LoadConfig reads configuration from defaults, the optional YAML file at
// path, then the environment. Later sources win.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	for k, val := range configDefaults {
		v.SetDefault(k, val)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimRight(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "data"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/index.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.Locale == "" {
		c.Locale = "en_US"
	}
}

// PreviewEnabled reports whether the draft preview admin is configured.
func (c SiteConfig) PreviewEnabled() bool {
	return c.AdminPassword != "" && c.SessionSecret != ""
}

// SiteMetadata returns the read-only view the seo composers work from.
func (c SiteConfig) SiteMetadata() seo.SiteMetadata {
	return seo.SiteMetadata{
		Title:          c.Title,
		Description:    c.Description,
		SiteURL:        c.URL,
		Author:         c.Author,
		SocialBanner:   absoluteURL(c.URL, c.SocialBanner),
		SiteLogo:       c.Logo,
		Email:          c.Email,
		GitHub:         c.GitHub,
		LinkedIn:       c.LinkedIn,
		Twitter:        c.Twitter,
		TwitterHandle:  c.TwitterHandle,
		Locale:         c.Locale,
		AuthorJobTitle: c.JobTitle,
		AuthorBio:      c.Bio,
		KnowsAbout:     append([]string(nil), c.KnowsAbout...),
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir overrides SiteConfig.StaticDir.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithLogger sets the logger used by the App.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

func absoluteURL(base, p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}
