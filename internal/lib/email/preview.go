package email

// PreviewData holds sample variables for every template.
var PreviewData = map[Template]map[string]string{
	TemplateArticleCreated: {
		"ArticleID":    "12",
		"AuthorID":     "42",
		"ArticleTitle": "Five mobility drills before squats",
	},
}
