package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateCRUDIsStaffOnly(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser(t, "visitor", false)
	_, staffToken := env.createUser(t, "operator", true)

	t.Run("non-staff cannot create", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-certificate/", userToken, map[string]any{
			"title":      "Nope",
			"issue_date": "2024-01-15",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	var certificateID uint
	t.Run("staff creates with a derived slug", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-certificate/", staffToken, map[string]any{
			"title":           "Cloud Practitioner",
			"issued_by":       "AWS",
			"issue_date":      "2024-01-15",
			"expiration_date": "2027-01-15",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var created certificateView
		decodeBody(t, rec, &created)
		assert.Equal(t, "cloud-practitioner", created.Slug)
		assert.Equal(t, "AWS", created.IssuedBy)
		assert.Equal(t, "2024-01-15", created.IssueDate.Format("2006-01-02"))
		require.NotNil(t, created.ExpirationDate)
		certificateID = created.ID
	})

	t.Run("slug lookup is public", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/certificates/cloud-practitioner/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.doJSON(t, http.MethodGet, "/certificates/no-such-cert/", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = env.doJSON(t, http.MethodGet, "/certificates/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var page PaginatedResponse
		decodeBody(t, rec, &page)
		assert.EqualValues(t, 1, page.Count)
	})

	t.Run("non-staff cannot update or delete", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/update-certificate/%d/", certificateID), userToken, map[string]any{"title": "Hijacked"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = env.doJSON(t, http.MethodDelete, fmt.Sprintf("/delete-certificate/%d/", certificateID), userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("staff updates keep unspecified fields", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, fmt.Sprintf("/update-certificate/%d/", certificateID), staffToken, map[string]any{
			"description": "foundational cloud cert",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated certificateView
		decodeBody(t, rec, &updated)
		assert.Equal(t, "foundational cloud cert", updated.Description)
		assert.Equal(t, "Cloud Practitioner", updated.Title)
		assert.Equal(t, "AWS", updated.IssuedBy)
	})

	t.Run("staff deletes", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodDelete, fmt.Sprintf("/delete-certificate/%d/", certificateID), staffToken, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		gone, err := env.db.CertificateRepo().FindByID(certificateID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestCertificateDateValidation(t *testing.T) {
	env := newTestEnv(t)
	_, staffToken := env.createUser(t, "operator", true)

	t.Run("issue date is required", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-certificate/", staffToken, map[string]any{"title": "Undated"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dates must be YYYY-MM-DD", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPost, "/create-certificate/", staffToken, map[string]any{
			"title":      "Bad Date",
			"issue_date": "15/01/2024",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body ErrorResponse
		decodeBody(t, rec, &body)
		assert.Equal(t, "issue_date", body.Field)
	})
}
