package api

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-cms-backend/storage"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
// uploads spill to temp files.
const maxUploadMemory = 10 << 20

// Handlers accept either application/json bodies or multipart/form-data (the
// latter is required when a file rides along). The helpers below treat an
// absent form field as nil so partial-update semantics fall out naturally.

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func parseMultipart(r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}
	return r.ParseMultipartForm(maxUploadMemory)
}

// formString returns the form value for key, or nil when the field was not
// submitted at all.
func formString(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// formStringSlice decodes a JSON array form field (e.g. technologies).
func formStringSlice(r *http.Request, key string) (*[]string, error) {
	raw := formString(r, key)
	if raw == nil {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(*raw), &values); err != nil {
		return nil, err
	}
	return &values, nil
}

// formFile returns the uploaded file header for key, or nil when no file was
// submitted.
func formFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files, ok := r.MultipartForm.File[key]
	if !ok || len(files) == 0 {
		return nil
	}
	return files[0]
}

// saveUpload streams an uploaded file into the media store and returns the
// stored relative path.
func saveUpload(store storage.Store, dir string, header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return store.Save(dir, header.Filename, f)
}

// decodeJSON decodes a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
