package model

import "time"

// Follow is a follower edge between two users. The table is migrated with
// the rest of the schema; no route exposes it yet.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follower_followed"`
	FollowedID uint      `json:"followed_id" gorm:"not null;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
