package models

import "time"

// Comment attaches to exactly one content entity, identified by a (kind, id)
// pair, and optionally to a parent comment for one level of reply nesting.
// A reply's parent must be a top-level comment attached to the same (kind, id)
// pair; the API layer enforces both rules on creation.
type Comment struct {
	ID        uint        `json:"id" db:"id" gorm:"primaryKey"`
	Kind      ContentKind `json:"kind" db:"kind" gorm:"type:text;not null;index:idx_comments_target"`
	TargetID  uint        `json:"target_id" db:"target_id" gorm:"not null;index:idx_comments_target"`
	AuthorID  uint        `json:"author_id" db:"author_id" gorm:"not null;index"`
	Author    *User       `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
	Content   string      `json:"content" db:"content" gorm:"type:text;not null"`
	ParentID  *uint       `json:"parent_id,omitempty" db:"parent_id" gorm:"index"`
	Replies   []Comment   `json:"-" gorm:"foreignKey:ParentID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time   `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
}

// IsReply reports whether the comment is a nested reply.
func (c Comment) IsReply() bool {
	return c.ParentID != nil
}
