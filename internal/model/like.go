package model

import "time"

// Like records that a user liked a post. The composite unique index backs
// the application-level duplicate check against concurrent inserts.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_post"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_user_post"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
