package seo

import "strings"

// PageType is the Open Graph object type of a page.
type PageType string

const (
	TypeWebsite PageType = "website"
	TypeArticle PageType = "article"
)

const (
	defaultLocale    = "en_US"
	articleSection   = "Technology"
	twitterCardLarge = "summary_large_image"
	rootCanonical    = "./"
	defaultHandle    = "blog"
)

// DefaultKeywords returns the generic keyword set used when a page supplies none.
func DefaultKeywords() []string {
	return []string{
		"software engineering",
		"backend development",
		"programming",
		"technical blog",
	}
}

// PageSEOInput carries page-specific fields. Only Title is required.
//
// A nil Keywords slice means "not supplied" and selects the defaults; a
// non-nil empty slice is used as-is.
type PageSEOInput struct {
	Title         string
	Description   string
	Image         string
	Keywords      []string
	Author        string
	PublishedTime string
	ModifiedTime  string
	URL           string
	Type          PageType // empty means TypeWebsite

	// Overrides run after composition in order; later ones win.
	Overrides []Override
}

// Override replaces top-level fields of a composed PageMetadata.
type Override func(*PageMetadata)

// Author is a named page author.
type Author struct {
	Name string
	URL  string
}

// GoogleBot holds the crawler-specific robots directives.
type GoogleBot struct {
	Index           bool
	Follow          bool
	MaxVideoPreview int
	MaxImagePreview string
	MaxSnippet      int
}

// Robots holds the robots meta directives for a page.
type Robots struct {
	Index     bool
	Follow    bool
	GoogleBot GoogleBot
}

// DefaultRobots is the indexing policy applied to every page: index and
// follow, with unrestricted preview and snippet sizes.
func DefaultRobots() Robots {
	return Robots{
		Index:  true,
		Follow: true,
		GoogleBot: GoogleBot{
			Index:           true,
			Follow:          true,
			MaxVideoPreview: -1,
			MaxImagePreview: "large",
			MaxSnippet:      -1,
		},
	}
}

// OpenGraph is the og:* block. The article fields are only set for article
// pages that have a publish time.
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Images      []string
	Locale      string
	Type        PageType

	PublishedTime string
	ModifiedTime  string
	Authors       []string
	Section       string
	Tags          []string
}

// IsArticle reports whether the article:* fields are populated.
func (og OpenGraph) IsArticle() bool {
	return og.PublishedTime != ""
}

// Twitter is the twitter:* card block.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Images      []string
	Creator     string
	Site        string
}

// Alternates holds alternate links for the page.
type Alternates struct {
	Canonical string
}

// PageMetadata is the fully resolved metadata record for one page.
type PageMetadata struct {
	Title       string
	Description string
	Keywords    []string
	Authors     []Author
	Creator     string
	Publisher   string
	Robots      Robots
	OpenGraph   OpenGraph
	Twitter     Twitter
	Alternates  Alternates

	// Other holds extra <meta name=... content=...> pairs.
	Other map[string]string
}

// KeywordsContent joins the keywords for the keywords meta tag.
func (m PageMetadata) KeywordsContent() string {
	return strings.Join(m.Keywords, ", ")
}

// GenPageMetadata merges page input with site defaults into a complete record.
func GenPageMetadata(site SiteMetadata, in PageSEOInput) PageMetadata {
	title := in.Title
	if !strings.Contains(title, site.Title) {
		title = title + " | " + site.Title
	}
	description := in.Description
	if description == "" {
		description = site.Description
	}
	image := site.SocialBanner
	if in.Image != "" {
		image = in.Image
	}
	keywords := DefaultKeywords()
	if in.Keywords != nil {
		keywords = append([]string{}, in.Keywords...)
	}
	author := in.Author
	if author == "" {
		author = site.Author
	}
	canonical := in.URL
	if canonical == "" {
		canonical = rootCanonical
	}
	pageType := in.Type
	if pageType == "" {
		pageType = TypeWebsite
	}
	handle := site.Handle()

	og := OpenGraph{
		Title:       title,
		Description: description,
		URL:         canonical,
		SiteName:    site.Title,
		Images:      []string{image},
		Locale:      site.locale(),
		Type:        pageType,
	}
	if pageType == TypeArticle && in.PublishedTime != "" {
		og.PublishedTime = in.PublishedTime
		og.ModifiedTime = in.ModifiedTime
		if og.ModifiedTime == "" {
			og.ModifiedTime = in.PublishedTime
		}
		og.Authors = []string{author}
		og.Section = articleSection
		og.Tags = append([]string{}, keywords...)
	}

	meta := PageMetadata{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		Authors:     []Author{{Name: author}},
		Creator:     site.Author,
		Publisher:   site.Author,
		Robots:      DefaultRobots(),
		OpenGraph:   og,
		Twitter: Twitter{
			Card:        twitterCardLarge,
			Title:       title,
			Description: description,
			Images:      []string{image},
			Creator:     handle,
			Site:        handle,
		},
		Alternates: Alternates{Canonical: canonical},
	}
	for _, o := range in.Overrides {
		if o != nil {
			o(&meta)
		}
	}
	return meta
}

// BlogPostSEOInput is the front-matter view of a post used for its metadata.
type BlogPostSEOInput struct {
	Title       string
	Description string
	Tags        []string
	Date        string
	Lastmod     string
	Images      []string
	Slug        string
	Author      string

	Overrides []Override
}

// GenBlogPostMetadata maps post fields onto PageSEOInput and delegates to
// GenPageMetadata. The canonical URL is SiteURL + "/blog/" + slug.
func GenBlogPostMetadata(site SiteMetadata, in BlogPostSEOInput) PageMetadata {
	modified := in.Lastmod
	if modified == "" {
		modified = in.Date
	}
	var image string
	if len(in.Images) > 0 {
		image = in.Images[0]
	}
	return GenPageMetadata(site, PageSEOInput{
		Title:         in.Title,
		Description:   in.Description,
		Keywords:      in.Tags,
		Author:        in.Author,
		PublishedTime: in.Date,
		ModifiedTime:  modified,
		URL:           site.SiteURL + "/blog/" + in.Slug,
		Type:          TypeArticle,
		Image:         image,
		Overrides:     in.Overrides,
	})
}

// WithTitle replaces the top-level title. The og and twitter titles keep the
// composed value.
func WithTitle(title string) Override {
	return func(m *PageMetadata) {
		m.Title = title
	}
}

// WithDescription replaces the top-level description only.
func WithDescription(description string) Override {
	return func(m *PageMetadata) {
		m.Description = description
	}
}

// WithRobots replaces the robots block.
func WithRobots(r Robots) Override {
	return func(m *PageMetadata) {
		m.Robots = r
	}
}

// NoIndex is the robots block for pages that must stay out of search results.
func NoIndex() Robots {
	return Robots{GoogleBot: GoogleBot{MaxVideoPreview: -1, MaxSnippet: -1}}
}

// WithCanonical replaces the alternates block.
func WithCanonical(url string) Override {
	return func(m *PageMetadata) {
		m.Alternates = Alternates{Canonical: url}
	}
}

// WithOther adds an extra meta tag.
func WithOther(name, content string) Override {
	return func(m *PageMetadata) {
		if m.Other == nil {
			m.Other = make(map[string]string)
		}
		m.Other[name] = content
	}
}
