package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentKind(t *testing.T) {
	t.Run("accepts the closed set", func(t *testing.T) {
		kind, err := ParseContentKind("project")
		require.NoError(t, err)
		assert.Equal(t, ContentKindProject, kind)

		kind, err = ParseContentKind("article")
		require.NoError(t, err)
		assert.Equal(t, ContentKindArticle, kind)
	})

	t.Run("is case-insensitive", func(t *testing.T) {
		kind, err := ParseContentKind("Project")
		require.NoError(t, err)
		assert.Equal(t, ContentKindProject, kind)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		for _, raw := range []string{"video", "projects", "", "comment"} {
			_, err := ParseContentKind(raw)
			assert.Error(t, err, raw)
		}
	})
}

func TestCategoryMembership(t *testing.T) {
	assert.True(t, ValidProjectCategory("web_dev"))
	assert.True(t, ValidProjectCategory(CategoryOther))
	assert.False(t, ValidProjectCategory("finance"))

	assert.True(t, ValidArticleCategory("finance"))
	assert.False(t, ValidArticleCategory("game_dev"))
}
