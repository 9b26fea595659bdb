package email

type Template string

const (
	TemplateArticleCreated Template = "article_created"
)

func (t Template) file() string {
	return string(t) + ".html"
}
