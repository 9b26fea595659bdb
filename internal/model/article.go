package model

type Article struct {
	Base
	UserID  int    `json:"userId" db:"user_id"`
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`
}

// ArticleUpdate carries the fields of a partial update. Nil means unchanged.
type ArticleUpdate struct {
	Title   *string
	Content *string
}

// ArticleFilter narrows an article listing.
type ArticleFilter struct {
	Page   int
	Limit  int
	UserID *int
}

// Offset is the number of rows skipped before the current page.
func (f ArticleFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
