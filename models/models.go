package models

// All returns every persisted entity in migration order (referenced tables
// first).
func All() []any {
	return []any{
		&User{},
		&SocialAccount{},
		&Project{},
		&Article{},
		&Certificate{},
		&Comment{},
	}
}
