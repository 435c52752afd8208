// Package seo builds the per-page metadata records and schema.org JSON-LD
// objects that end up in a page's <head>.
//
// Every function in this package is pure: it reads a SiteMetadata value and
// the page-supplied input and returns a freshly built record. Nothing is cached
// or shared between calls, so concurrent renders need no coordination.
package seo

import (
	"strings"
	"unicode"
)

// SiteMetadata holds the site-wide values used to fill gaps in page input.
// It is loaded once at startup and must not be mutated afterwards.
type SiteMetadata struct {
	Title         string
	Description   string
	SiteURL       string // no trailing slash
	Author        string
	SocialBanner  string // default og/twitter image
	SiteLogo      string // path appended to SiteURL
	Email         string
	GitHub        string
	LinkedIn      string
	Twitter       string
	TwitterHandle string // e.g. "@handle", used for twitter:creator and twitter:site
	Locale        string

	AuthorJobTitle string
	AuthorBio      string
	KnowsAbout     []string
}

// LogoURL returns the absolute URL of the site logo.
func (s SiteMetadata) LogoURL() string {
	return s.SiteURL + s.SiteLogo
}

// Handle returns the twitter:site handle. An unset TwitterHandle is derived
// from the last path segment of the Twitter profile URL, then from the site
// title.
func (s SiteMetadata) Handle() string {
	if s.TwitterHandle != "" {
		if strings.HasPrefix(s.TwitterHandle, "@") {
			return s.TwitterHandle
		}
		return "@" + s.TwitterHandle
	}
	if u := strings.TrimRight(s.Twitter, "/"); u != "" {
		if i := strings.LastIndex(u, "/"); i >= 0 && i < len(u)-1 {
			return "@" + u[i+1:]
		}
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return -1
	}, s.Title)
	if name == "" {
		name = defaultHandle
	}
	return "@" + name
}

func (s SiteMetadata) locale() string {
	if s.Locale == "" {
		return defaultLocale
	}
	return s.Locale
}
