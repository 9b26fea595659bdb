package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse[Article](nil, 2, 10, 21)

	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 3, resp.TotalPages)

	resp = NewPaginatedResponse([]Article{{}}, 1, 10, 0)
	assert.Equal(t, 0, resp.TotalPages)
}

func TestArticleFilterOffset(t *testing.T) {
	assert.Equal(t, 0, ArticleFilter{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, ArticleFilter{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, ArticleFilter{Page: 0, Limit: 20}.Offset())
}
