package models

import (
	"fmt"
	"strings"
)

// ContentKind tags the target of a polymorphic comment reference. The set is
// closed: comments attach to projects or articles, nothing else.
type ContentKind string

const (
	ContentKindProject ContentKind = "project"
	ContentKindArticle ContentKind = "article"
)

// ParseContentKind converts a path segment into a ContentKind. Matching is
// case-insensitive; anything outside the closed set is rejected.
func ParseContentKind(s string) (ContentKind, error) {
	switch strings.ToLower(s) {
	case string(ContentKindProject):
		return ContentKindProject, nil
	case string(ContentKindArticle):
		return ContentKindArticle, nil
	default:
		return "", fmt.Errorf("unknown content kind %q", s)
	}
}
