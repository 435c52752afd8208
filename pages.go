package blog

import (
	"strings"

	"github.com/betterengineer/blog/content"
	"github.com/betterengineer/blog/seo"
)

// Fixed SEO copy for the top-level pages. Titles that already contain the
// site title are used without the " | site" suffix.

func homeSEO(site seo.SiteMetadata) seo.PageSEOInput {
	return seo.PageSEOInput{
		Title: site.Title + " - Technical Blog & Software Development Insights",
		Description: "Explore backend software engineering, system architecture, Go programming, " +
			"microservices, and modern development practices. Learn from real-world experience " +
			"in building scalable systems.",
		Keywords: []string{
			"software engineering",
			"backend development",
			"system architecture",
			"Go programming",
			"microservices",
			"database design",
			"API development",
			"scalable systems",
			"DevOps",
			"cloud computing",
			"programming tutorials",
			"tech blog",
		},
	}
}

func blogSEO() seo.PageSEOInput {
	return seo.PageSEOInput{
		Title: "Blog - Software Engineering Articles & Tutorials",
		Description: "Read in-depth articles about backend development, system architecture, " +
			"Go programming, microservices, and software engineering best practices. " +
			"Stay updated with the latest tech trends and practical tutorials.",
		Keywords: []string{
			"software engineering blog",
			"backend development articles",
			"programming tutorials",
			"system architecture",
			"Go programming guides",
			"microservices patterns",
			"technical blog posts",
			"software development insights",
		},
	}
}

func aboutSEO(site seo.SiteMetadata, author content.Author) seo.PageSEOInput {
	name := author.Name
	job := author.Occupation
	if job == "" {
		job = site.AuthorJobTitle
	}
	if job == "" {
		job = "Software Engineer"
	}
	desc := "Learn about " + name + ", a passionate " + strings.ToLower(job) +
		" specializing in scalable systems, Go programming, microservices architecture, " +
		"and modern development practices."
	return seo.PageSEOInput{
		Title:       "About " + name + " - " + job,
		Description: desc,
		Keywords: []string{
			name,
			"software engineer",
			"backend developer",
			"Go programmer",
			"system architect",
			"microservices expert",
			"DevOps engineer",
			"full-stack developer",
		},
	}
}
