package models

import "time"

// Media is a stored file reference. It is registered unattached and later
// claimed by exactly one post.
type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Link      string    `gorm:"type:varchar(100);not null" json:"link"`
	PostID    *uint     `gorm:"index:idx_media_post" json:"post_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Media) TableName() string {
	return "media"
}
