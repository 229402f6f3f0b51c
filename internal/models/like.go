package models

import "time"

// Like represents an account's like on a post.
// The combination of AccountID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_likes_account_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_account_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
	Post    Post    `gorm:"foreignKey:PostID" json:"-"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}
