package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/betterengineer/blog"
	"github.com/betterengineer/blog/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "new":
		err = runNew(os.Args[2:])
	case "sitemap":
		err = runSitemap(os.Args[2:])
	case "version":
		fmt.Printf("blog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig parses the shared -config flag and loads configuration.
func loadConfig(fs *flag.FlagSet, args []string) (blog.SiteConfig, error) {
	path := fs.String("config", blog.EnvOr("BLOG_CONFIG", ""), "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		return blog.SiteConfig{}, err
	}
	return blog.LoadConfig(*path)
}

func runServe(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("serve", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	logger, err := blog.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	if !cfg.PreviewEnabled() {
		logger.Info("draft preview disabled; set ADMIN_PASSWORD and SESSION_SECRET to enable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := blog.New(cfg, blog.DefaultViews(), blog.WithLogger(logger))
	defer app.Close()
	if err := app.Start(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

func runSitemap(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("sitemap", flag.ExitOnError), args)
	if err != nil {
		return err
	}
	coll, err := content.LoadDir(cfg.ContentDir, nil)
	if err != nil {
		return err
	}
	entries := blog.BuildSitemap(cfg.URL, coll.Posts, time.Now())
	return blog.WriteSitemap(os.Stdout, entries)
}

func printUsage() {
	fmt.Println(`blog - a technical blog served with Go, Echo, and templ

Usage:
  blog <command> [arguments]

Commands:
  serve [-config file]                   Start the HTTP server
  new [-tags a,b] [-summary s] <title>   Create a draft post in CONTENT_DIR/blog
  sitemap [-config file]                 Print sitemap.xml to stdout
  version                                Print the blog version
  help                                   Show this help message

Configuration comes from the environment (SITE_URL, CONTENT_DIR, ...) and
an optional YAML file passed with -config or BLOG_CONFIG.

Examples:
  blog serve -config blog.yaml
  blog new -tags go,databases "Tuning SQLite for reads"`)
}
