package email

import "strconv"

// SendArticleCreatedEmail tells the editorial inbox about a new article.
func (c *Client) SendArticleCreatedEmail(to string, articleID, authorID int, title string) error {
	data := map[string]string{
		"ArticleID":    strconv.Itoa(articleID),
		"AuthorID":     strconv.Itoa(authorID),
		"ArticleTitle": title,
	}

	return c.SendEmail(
		to,
		"New article on FitQuest: "+title,
		TemplateArticleCreated,
		data,
	)
}
