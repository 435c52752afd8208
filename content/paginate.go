package content

// PostsPerPage is the list page size.
const PostsPerPage = 5

// Pagination describes where a page sits in a list.
type Pagination struct {
	CurrentPage int
	TotalPages  int
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool { return p.CurrentPage < p.TotalPages }

// Page is one slice of a paginated list.
type Page struct {
	Posts      []Post
	Pagination Pagination
}

// Paginate returns page (1-based) of posts. It reports false when page is out
// of range. An empty list still has a single, empty first page.
func Paginate(posts []Post, page, perPage int) (Page, bool) {
	if perPage <= 0 {
		perPage = PostsPerPage
	}
	total := (len(posts) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}
	if page < 1 || page > total {
		return Page{}, false
	}
	start := perPage * (page - 1)
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}
	return Page{
		Posts:      posts[start:end],
		Pagination: Pagination{CurrentPage: page, TotalPages: total},
	}, true
}
