package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCRUDIsStaffOnly(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser(t, "visitor", false)
	_, staffToken := env.createUser(t, "operator", true)

	t.Run("non-staff cannot create", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-project/", userToken, map[string]any{"title": "Nope"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	var projectID uint
	t.Run("staff creates with defaults", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-project/", staffToken, map[string]any{
			"title":        "Portfolio Site",
			"description":  "this site",
			"technologies": []string{"go", "chi", "gorm"},
			"category":     "web_dev",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var created projectView
		decodeBody(t, rec, &created)
		assert.Equal(t, "portfolio-site", created.Slug)
		assert.True(t, created.IsDraft)
		assert.Nil(t, created.PublishedDate)
		assert.EqualValues(t, []string{"go", "chi", "gorm"}, []string(created.Technologies))
		projectID = created.ID
	})

	t.Run("publishing stamps the date once", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/update-project/%d/", projectID), staffToken, map[string]any{"is_draft": false})
		require.Equal(t, http.StatusOK, rec.Code)

		var published projectView
		decodeBody(t, rec, &published)
		require.NotNil(t, published.PublishedDate)
		first := *published.PublishedDate

		// Unpublishing keeps the original date.
		rec = env.doJSON(t, http.MethodPut, fmt.Sprintf("/update-project/%d/", projectID), staffToken, map[string]any{"is_draft": true})
		require.Equal(t, http.StatusOK, rec.Code)
		decodeBody(t, rec, &published)
		require.NotNil(t, published.PublishedDate)
		assert.WithinDuration(t, first, *published.PublishedDate, time.Second)
	})

	t.Run("non-staff cannot update or delete", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/update-project/%d/", projectID), userToken, map[string]any{"title": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/delete-project/%d/", projectID), userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff deletes", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/delete-project/%d/", projectID), staffToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	_, staffToken := env.createUser(t, "operator", true)

	t.Run("title is required", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-project/", staffToken, map[string]any{"description": "untitled"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("category must be in the enum", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-project/", staffToken, map[string]any{
			"title":    "Bad Category",
			"category": "knitting",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProjectListPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := range 13 {
		project := &models.Project{Title: fmt.Sprintf("Project %02d", i), Category: models.CategoryOther, IsDraft: false}
		require.NoError(t, env.db.ProjectRepo().Add(project))
	}

	rec := env.doJSON(t, http.MethodGet, "/projects/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var first PaginatedResponse
	decodeBody(t, rec, &first)
	assert.EqualValues(t, 13, first.Count)
	require.NotNil(t, first.Next)
	assert.Nil(t, first.Previous)
	assert.Len(t, first.Results, 10)

	rec = env.doJSON(t, http.MethodGet, "/projects/?page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var second PaginatedResponse
	decodeBody(t, rec, &second)
	assert.Nil(t, second.Next)
	require.NotNil(t, second.Previous)
	assert.Len(t, second.Results, 3)
}

func TestProjectCategoriesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodGet, "/projects/categories/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []map[string]string
	decodeBody(t, rec, &categories)
	assert.Len(t, categories, 10)
}
