package seo

import (
	"encoding/json"
	"strings"
)

const schemaContext = "https://schema.org"

// StructuredData is a JSON-LD object graph. Optional properties are left out
// of the map entirely rather than set to nil.
type StructuredData map[string]any

// JSON encodes v compactly. It returns "{}" when v cannot be encoded.
// encoding/json escapes <, > and & so the result is safe inside a script element.
func JSON(v StructuredData) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingInput holds the entity fields of a BlogPosting.
type BlogPostingInput struct {
	Title         string
	Description   string
	DatePublished string
	DateModified  string
	Author        string
	URL           string
	Image         string
	Tags          []string // nil leaves out keywords
}

// BlogPosting returns a schema.org BlogPosting for a single post.
func BlogPosting(site SiteMetadata, in BlogPostingInput) StructuredData {
	modified := in.DateModified
	if modified == "" {
		modified = in.DatePublished
	}
	data := StructuredData{
		"@context":    schemaContext,
		"@type":       "BlogPosting",
		"headline":    in.Title,
		"description": in.Description,
		"author": map[string]any{
			"@type": "Person",
			"name":  in.Author,
			"url":   site.SiteURL,
		},
		"publisher": map[string]any{
			"@type": "Person",
			"name":  site.Author,
			"logo": map[string]any{
				"@type": "ImageObject",
				"url":   site.LogoURL(),
			},
		},
		"datePublished": in.DatePublished,
		"dateModified":  modified,
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   in.URL,
		},
	}
	if in.Image != "" {
		data["image"] = map[string]any{
			"@type": "ImageObject",
			"url":   in.Image,
		}
	}
	if in.Tags != nil {
		data["keywords"] = strings.Join(in.Tags, ", ")
	}
	return data
}

// Website returns a schema.org WebSite with a sitelinks SearchAction.
// url defaults to the site URL.
func Website(site SiteMetadata, url string) StructuredData {
	if url == "" {
		url = site.SiteURL
	}
	return StructuredData{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"name":        site.Title,
		"description": site.Description,
		"url":         url,
		"author": map[string]any{
			"@type": "Person",
			"name":  site.Author,
		},
		"potentialAction": map[string]any{
			"@type": "SearchAction",
			"target": map[string]any{
				"@type":       "EntryPoint",
				"urlTemplate": site.SiteURL + "/search?q={search_term_string}",
			},
			"query-input": "required name=search_term_string",
		},
	}
}

// Person returns a schema.org Person describing the site author.
func Person(site SiteMetadata) StructuredData {
	data := StructuredData{
		"@context":    schemaContext,
		"@type":       "Person",
		"name":        site.Author,
		"url":         site.SiteURL,
		"sameAs":      SameAs(site),
		"jobTitle":    site.AuthorJobTitle,
		"description": site.AuthorBio,
		"knowsAbout":  nonNil(site.KnowsAbout),
	}
	if site.Email != "" {
		data["email"] = site.Email
	}
	return data
}

// Organization returns a schema.org Organization for the site itself.
func Organization(site SiteMetadata) StructuredData {
	return StructuredData{
		"@context":    schemaContext,
		"@type":       "Organization",
		"name":        site.Title,
		"url":         site.SiteURL,
		"logo":        site.LogoURL(),
		"description": site.Description,
		"founder": map[string]any{
			"@type": "Person",
			"name":  site.Author,
		},
		"sameAs": SameAs(site),
	}
}

// SameAs lists the configured social profile URLs, skipping unset ones.
// The result is never nil so it encodes as [] rather than null.
func SameAs(site SiteMetadata) []string {
	out := make([]string, 0, 3)
	for _, u := range []string{site.GitHub, site.LinkedIn, site.Twitter} {
		if strings.TrimSpace(u) != "" {
			out = append(out, u)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
