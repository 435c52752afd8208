// Package scaffold holds the embedded templates used by `blog new` to
// create content files. Files use Go text/template syntax and have a .tmpl
// suffix.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"text/template"
)

// Templates contains all scaffold template files.
//
//go:embed all:templates
var Templates embed.FS

var postTmpl = template.Must(template.ParseFS(Templates, "templates/post.md.tmpl"))

// Post is the data for a new post file.
type Post struct {
	Title   string
	Date    string // 2006-01-02
	Tags    []string
	Summary string
}

// WritePost renders a draft post with front matter to w.
func WritePost(w io.Writer, p Post) error {
	if p.Title == "" {
		return fmt.Errorf("scaffold: title is required")
	}
	return postTmpl.Execute(w, p)
}
