package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() SiteMetadata {
	return SiteMetadata{
		Title:         "Better Engineer",
		Description:   "Notes on backend engineering.",
		SiteURL:       "https://example.dev",
		Author:        "Jane Doe",
		SocialBanner:  "/static/images/twitter-card.png",
		SiteLogo:      "/static/images/logo.png",
		GitHub:        "https://github.com/janedoe",
		TwitterHandle: "@janedoe",
		Locale:        "en_US",
	}
}

func TestGenPageMetadataAlwaysPopulated(t *testing.T) {
	site := testSite()
	inputs := []PageSEOInput{
		{Title: "About"},
		{Title: "Blog", Description: "All posts", Keywords: []string{"go"}},
		{Title: "Post", Image: "/img/a.png", Type: TypeArticle, PublishedTime: "2024-01-01"},
		{Title: "Bare", Keywords: nil, Author: "Someone"},
	}
	for _, in := range inputs {
		meta := GenPageMetadata(site, in)
		assert.NotEmpty(t, meta.Title, in.Title)
		assert.NotEmpty(t, meta.Description, in.Title)
		assert.NotEmpty(t, meta.Keywords, in.Title)
		assert.NotEmpty(t, meta.Authors, in.Title)
		assert.Len(t, meta.OpenGraph.Images, 1, in.Title)
		assert.Len(t, meta.Twitter.Images, 1, in.Title)
		assert.NotEmpty(t, meta.Alternates.Canonical, in.Title)
		assert.NotEmpty(t, meta.Creator, in.Title)
		assert.NotEmpty(t, meta.Publisher, in.Title)
	}
}

func TestGenPageMetadataTitle(t *testing.T) {
	site := testSite()
	tests := []struct {
		input string
		want  string
	}{
		{"About", "About | Better Engineer"},
		{"Better Engineer - Home", "Better Engineer - Home"},
		{"About | Better Engineer", "About | Better Engineer"},
	}
	for _, tt := range tests {
		got := GenPageMetadata(site, PageSEOInput{Title: tt.input}).Title
		if got != tt.want {
			t.Errorf("GenPageMetadata(%q).Title = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenPageMetadataTitleIdempotent(t *testing.T) {
	site := testSite()
	first := GenPageMetadata(site, PageSEOInput{Title: "Projects"})
	second := GenPageMetadata(site, PageSEOInput{Title: first.Title})
	assert.Equal(t, first.Title, second.Title)
}

func TestGenPageMetadataDefaults(t *testing.T) {
	site := testSite()
	meta := GenPageMetadata(site, PageSEOInput{Title: "Tags"})

	assert.Equal(t, site.Description, meta.Description)
	assert.Equal(t, []string{site.SocialBanner}, meta.OpenGraph.Images)
	assert.Equal(t, DefaultKeywords(), meta.Keywords)
	assert.Equal(t, "./", meta.Alternates.Canonical)
	assert.Equal(t, "./", meta.OpenGraph.URL)
	assert.Equal(t, []Author{{Name: "Jane Doe"}}, meta.Authors)
	assert.Equal(t, TypeWebsite, meta.OpenGraph.Type)
	assert.Equal(t, "en_US", meta.OpenGraph.Locale)
	assert.Equal(t, "Better Engineer", meta.OpenGraph.SiteName)
	assert.Equal(t, DefaultRobots(), meta.Robots)
	assert.Equal(t, "summary_large_image", meta.Twitter.Card)
	assert.Equal(t, "@janedoe", meta.Twitter.Creator)
	assert.Equal(t, "@janedoe", meta.Twitter.Site)
}

func TestGenPageMetadataEmptyKeywordsKept(t *testing.T) {
	meta := GenPageMetadata(testSite(), PageSEOInput{Title: "X", Keywords: []string{}})
	assert.NotNil(t, meta.Keywords)
	assert.Empty(t, meta.Keywords)
}

func TestGenPageMetadataKeywordOrder(t *testing.T) {
	kw := []string{"zeta", "alpha", "mid"}
	meta := GenPageMetadata(testSite(), PageSEOInput{Title: "X", Keywords: kw})
	assert.Equal(t, kw, meta.Keywords)
	assert.Equal(t, "zeta, alpha, mid", meta.KeywordsContent())
}

func TestDefaultRobotsPolicy(t *testing.T) {
	r := DefaultRobots()
	assert.True(t, r.Index)
	assert.True(t, r.Follow)
	assert.True(t, r.GoogleBot.Index)
	assert.True(t, r.GoogleBot.Follow)
	assert.Equal(t, -1, r.GoogleBot.MaxVideoPreview)
	assert.Equal(t, "large", r.GoogleBot.MaxImagePreview)
	assert.Equal(t, -1, r.GoogleBot.MaxSnippet)
}

func TestGenPageMetadataArticleGating(t *testing.T) {
	site := testSite()
	article := GenPageMetadata(site, PageSEOInput{
		Title:         "Post",
		Type:          TypeArticle,
		PublishedTime: "2024-01-01",
		Keywords:      []string{"go", "sql"},
	})
	require.True(t, article.OpenGraph.IsArticle())
	assert.Equal(t, "2024-01-01", article.OpenGraph.PublishedTime)
	assert.Equal(t, "2024-01-01", article.OpenGraph.ModifiedTime)
	assert.Equal(t, []string{"Jane Doe"}, article.OpenGraph.Authors)
	assert.Equal(t, "Technology", article.OpenGraph.Section)
	assert.Equal(t, []string{"go", "sql"}, article.OpenGraph.Tags)

	website := GenPageMetadata(site, PageSEOInput{
		Title:         "Post",
		Type:          TypeWebsite,
		PublishedTime: "2024-01-01",
	})
	assert.False(t, website.OpenGraph.IsArticle())
	assert.Empty(t, website.OpenGraph.PublishedTime)
	assert.Empty(t, website.OpenGraph.ModifiedTime)
	assert.Empty(t, website.OpenGraph.Section)
	assert.Nil(t, website.OpenGraph.Authors)

	noDate := GenPageMetadata(site, PageSEOInput{Title: "Post", Type: TypeArticle})
	assert.False(t, noDate.OpenGraph.IsArticle())
}

func TestGenPageMetadataArticleAuthor(t *testing.T) {
	meta := GenPageMetadata(testSite(), PageSEOInput{
		Title:         "Guest",
		Type:          TypeArticle,
		PublishedTime: "2024-02-02",
		ModifiedTime:  "2024-03-03",
		Author:        "Guest Writer",
	})
	assert.Equal(t, "2024-03-03", meta.OpenGraph.ModifiedTime)
	assert.Equal(t, []string{"Guest Writer"}, meta.OpenGraph.Authors)
	assert.Equal(t, []Author{{Name: "Guest Writer"}}, meta.Authors)
	assert.Equal(t, "Jane Doe", meta.Creator)
}

func TestGenPageMetadataOverrides(t *testing.T) {
	meta := GenPageMetadata(testSite(), PageSEOInput{
		Title: "Draft",
		Overrides: []Override{
			WithRobots(NoIndex()),
			WithDescription("first"),
			WithDescription("second"),
			WithOther("theme-color", "#000"),
			nil,
		},
	})
	assert.False(t, meta.Robots.Index)
	assert.False(t, meta.Robots.Follow)
	assert.Equal(t, "second", meta.Description)
	// shallow: the og block keeps the composed description
	assert.Equal(t, testSite().Description, meta.OpenGraph.Description)
	assert.Equal(t, "#000", meta.Other["theme-color"])
}

func TestGenPageMetadataTitleOverride(t *testing.T) {
	meta := GenPageMetadata(testSite(), PageSEOInput{
		Title:     "Home",
		Overrides: []Override{WithTitle("Custom"), WithCanonical("https://example.dev/")},
	})
	assert.Equal(t, "Custom", meta.Title)
	assert.Equal(t, "Home | Better Engineer", meta.OpenGraph.Title)
	assert.Equal(t, "https://example.dev/", meta.Alternates.Canonical)
}

func TestGenBlogPostMetadata(t *testing.T) {
	site := testSite()
	meta := GenBlogPostMetadata(site, BlogPostSEOInput{
		Title: "Foo",
		Slug:  "foo",
		Date:  "2024-01-01",
		Tags:  []string{"go"},
	})
	assert.Equal(t, "https://example.dev/blog/foo", meta.Alternates.Canonical)
	assert.Equal(t, "https://example.dev/blog/foo", meta.OpenGraph.URL)
	assert.Equal(t, TypeArticle, meta.OpenGraph.Type)
	assert.Equal(t, "2024-01-01", meta.OpenGraph.PublishedTime)
	assert.Equal(t, "2024-01-01", meta.OpenGraph.ModifiedTime)
	assert.Equal(t, []string{"go"}, meta.Keywords)
	assert.Equal(t, []string{site.SocialBanner}, meta.OpenGraph.Images)
}

func TestGenBlogPostMetadataLastmodAndImage(t *testing.T) {
	meta := GenBlogPostMetadata(testSite(), BlogPostSEOInput{
		Title:   "Bar",
		Slug:    "nested/bar",
		Date:    "2024-01-01",
		Lastmod: "2024-05-01",
		Images:  []string{"/img/first.png", "/img/second.png"},
	})
	assert.Equal(t, "2024-05-01", meta.OpenGraph.ModifiedTime)
	assert.Equal(t, []string{"/img/first.png"}, meta.OpenGraph.Images)
	assert.Equal(t, []string{"/img/first.png"}, meta.Twitter.Images)
	assert.Equal(t, DefaultKeywords(), meta.Keywords)
	assert.Equal(t, DefaultKeywords(), meta.OpenGraph.Tags)
}

func TestGenPageMetadataOwnsSlices(t *testing.T) {
	tags := []string{"a", "b"}
	meta := GenBlogPostMetadata(testSite(), BlogPostSEOInput{
		Title: "Owned",
		Slug:  "owned",
		Date:  "2024-01-01",
		Tags:  tags,
		Overrides: []Override{func(m *PageMetadata) {
			m.Twitter.Images[0] = "/tw.png"
			m.Keywords[0] = "z"
		}},
	})
	assert.Equal(t, []string{"a", "b"}, tags)
	assert.Equal(t, []string{"a", "b"}, meta.OpenGraph.Tags)
	assert.Equal(t, "/static/images/twitter-card.png", meta.OpenGraph.Images[0])
	assert.Equal(t, "/tw.png", meta.Twitter.Images[0])
	assert.Equal(t, []string{"z", "b"}, meta.Keywords)
}

func TestSiteHandle(t *testing.T) {
	tests := []struct {
		name string
		site SiteMetadata
		want string
	}{
		{"explicit", SiteMetadata{TwitterHandle: "@janedoe"}, "@janedoe"},
		{"missing at", SiteMetadata{TwitterHandle: "janedoe"}, "@janedoe"},
		{"from profile url", SiteMetadata{Twitter: "https://x.com/jd_writes/"}, "@jd_writes"},
		{"from title", SiteMetadata{Title: "Better Engineer"}, "@betterengineer"},
		{"nothing", SiteMetadata{}, "@blog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.site.Handle())
		})
	}
}

func TestGenPageMetadataDerivesHandle(t *testing.T) {
	site := testSite()
	site.TwitterHandle = ""
	meta := GenPageMetadata(site, PageSEOInput{Title: "About"})
	assert.Equal(t, "@betterengineer", meta.Twitter.Creator)
	assert.Equal(t, "@betterengineer", meta.Twitter.Site)
}
