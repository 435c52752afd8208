package blog

import (
	"encoding/xml"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/betterengineer/blog/content"
)

// Change frequencies used in the sitemap.
const (
	ChangeDaily   = "daily"
	ChangeWeekly  = "weekly"
	ChangeMonthly = "monthly"
)

// SitemapEntry is one URL in sitemap.xml.
type SitemapEntry struct {
	URL             string
	LastModified    string
	ChangeFrequency string
	Priority        float64
}

// BuildSitemap lists the fixed routes first, then every published post.
// Fixed routes are stamped with now.
func BuildSitemap(siteURL string, posts []content.Post, now time.Time) []SitemapEntry {
	stamp := now.UTC().Format(time.RFC3339)
	entries := []SitemapEntry{
		{URL: siteURL, LastModified: stamp, ChangeFrequency: ChangeDaily, Priority: 1.0},
		{URL: siteURL + "/blog", LastModified: stamp, ChangeFrequency: ChangeDaily, Priority: 0.9},
		{URL: siteURL + "/projects", LastModified: stamp, ChangeFrequency: ChangeMonthly, Priority: 0.7},
		{URL: siteURL + "/tags", LastModified: stamp, ChangeFrequency: ChangeWeekly, Priority: 0.6},
		{URL: siteURL + "/about", LastModified: stamp, ChangeFrequency: ChangeMonthly, Priority: 0.8},
	}
	for _, p := range posts {
		if p.Draft {
			continue
		}
		entries = append(entries, SitemapEntry{
			URL:             p.URL(siteURL),
			LastModified:    p.Modified(),
			ChangeFrequency: ChangeWeekly,
			Priority:        0.8,
		})
	}
	return entries
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// WriteSitemap encodes entries as a sitemaps.org urlset.
func WriteSitemap(w io.Writer, entries []SitemapEntry) error {
	urls := make([]sitemapURL, 0, len(entries))
	for _, e := range entries {
		urls = append(urls, sitemapURL{
			Loc:        e.URL,
			LastMod:    e.LastModified,
			ChangeFreq: e.ChangeFrequency,
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func (a *App) renderSitemap(c echo.Context, posts []content.Post) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return WriteSitemap(c.Response(), BuildSitemap(a.Site.SiteURL, posts, time.Now()))
}
