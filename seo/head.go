package seo

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Head renders the <head> tags for meta. Values are HTML-escaped.
func Head(meta PageMetadata) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<title>" + templ.EscapeString(meta.Title) + "</title>")
		writeName(&b, "description", meta.Description)
		writeName(&b, "keywords", meta.KeywordsContent())
		for _, a := range meta.Authors {
			writeName(&b, "author", a.Name)
		}
		writeName(&b, "creator", meta.Creator)
		writeName(&b, "publisher", meta.Publisher)
		writeName(&b, "robots", RobotsContent(meta.Robots))
		writeName(&b, "googlebot", GoogleBotContent(meta.Robots))
		if meta.Alternates.Canonical != "" {
			b.WriteString(`<link rel="canonical" href="` + templ.EscapeString(meta.Alternates.Canonical) + `">`)
		}

		og := meta.OpenGraph
		writeProperty(&b, "og:title", og.Title)
		writeProperty(&b, "og:description", og.Description)
		writeProperty(&b, "og:url", og.URL)
		writeProperty(&b, "og:site_name", og.SiteName)
		writeProperty(&b, "og:locale", og.Locale)
		for _, img := range og.Images {
			writeProperty(&b, "og:image", img)
		}
		writeProperty(&b, "og:type", string(og.Type))
		if og.IsArticle() {
			writeProperty(&b, "article:published_time", og.PublishedTime)
			writeProperty(&b, "article:modified_time", og.ModifiedTime)
			for _, a := range og.Authors {
				writeProperty(&b, "article:author", a)
			}
			writeProperty(&b, "article:section", og.Section)
			for _, t := range og.Tags {
				writeProperty(&b, "article:tag", t)
			}
		}

		tw := meta.Twitter
		writeName(&b, "twitter:card", tw.Card)
		writeName(&b, "twitter:site", tw.Site)
		writeName(&b, "twitter:creator", tw.Creator)
		writeName(&b, "twitter:title", tw.Title)
		writeName(&b, "twitter:description", tw.Description)
		for _, img := range tw.Images {
			writeName(&b, "twitter:image", img)
		}

		names := make([]string, 0, len(meta.Other))
		for k := range meta.Other {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			writeName(&b, k, meta.Other[k])
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// JSONLD renders one application/ld+json script element per object.
// The payload is written as produced by JSON, without HTML escaping.
func JSONLD(data ...StructuredData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, d := range data {
			if d == nil {
				continue
			}
			if _, err := io.WriteString(w, `<script type="application/ld+json">`+JSON(d)+`</script>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// RobotsContent formats the generic robots directives.
func RobotsContent(r Robots) string {
	return strings.Join(directives(r.Index, r.Follow), ", ")
}

// GoogleBotContent formats the googlebot directives including preview limits.
func GoogleBotContent(r Robots) string {
	g := r.GoogleBot
	parts := directives(g.Index, g.Follow)
	parts = append(parts, "max-video-preview:"+strconv.Itoa(g.MaxVideoPreview))
	if g.MaxImagePreview != "" {
		parts = append(parts, "max-image-preview:"+g.MaxImagePreview)
	}
	parts = append(parts, "max-snippet:"+strconv.Itoa(g.MaxSnippet))
	return strings.Join(parts, ", ")
}

func directives(index, follow bool) []string {
	parts := make([]string, 0, 5)
	if index {
		parts = append(parts, "index")
	} else {
		parts = append(parts, "noindex")
	}
	if follow {
		parts = append(parts, "follow")
	} else {
		parts = append(parts, "nofollow")
	}
	return parts
}

func writeName(b *strings.Builder, name, content string) {
	if content == "" {
		return
	}
	b.WriteString(`<meta name="` + templ.EscapeString(name) + `" content="` + templ.EscapeString(content) + `">`)
}

func writeProperty(b *strings.Builder, property, content string) {
	if content == "" {
		return
	}
	b.WriteString(`<meta property="` + templ.EscapeString(property) + `" content="` + templ.EscapeString(content) + `">`)
}
