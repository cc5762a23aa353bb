package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// slugMaxAttempts bounds the collision-retry loop. Six hex characters of
// suffix make a second collision vanishingly unlikely; the bound exists so a
// broken unique index cannot spin forever.
const slugMaxAttempts = 5

// slugify derives the slug base from a title.
func slugify(title string) string {
	return slug.Make(title)
}

// slugSuffix returns a short random hex suffix for collision disambiguation.
func slugSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
}

// isDuplicateKey reports whether err is a uniqueness violation. GORM's
// TranslateError covers both drivers; the string checks are a fallback for
// connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "UNIQUE constraint failed")
}

// createWithUniqueSlug inserts a row whose slug is derived from title. The
// slug is generated only when *slugField is empty. Collisions are detected
// through the unique constraint on the insert itself rather than a
// read-then-write check, and resolved by retrying with a suffixed slug.
// A caller-supplied slug is never rewritten; its conflict surfaces as-is.
func createWithUniqueSlug(title string, slugField *string, create func() error) error {
	generated := false
	if *slugField == "" {
		*slugField = slugify(title)
		generated = true
	}

	var err error
	for attempt := 0; attempt < slugMaxAttempts; attempt++ {
		err = create()
		if err == nil {
			return nil
		}
		if !generated || !isDuplicateKey(err) {
			return err
		}
		*slugField = fmt.Sprintf("%s-%s", slugify(title), slugSuffix())
	}
	return err
}
