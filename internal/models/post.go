package models

import "time"

// Post is a short text authored by an account, optionally carrying media.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index:idx_posts_author" json:"author_id"`
	Content   string    `gorm:"type:varchar(280);not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Author Account `gorm:"foreignKey:AuthorID" json:"-"`
	Media  []Media `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Likes  []Like  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// PostView is the feed representation of a post.
type PostView struct {
	ID          uint           `json:"id"`
	Content     string         `json:"content"`
	Attachments []string       `json:"attachments"`
	Author      AccountSummary `json:"author"`
	Likes       []LikeView     `json:"likes"`
}

// LikeView identifies who liked a post.
type LikeView struct {
	AccountID uint   `json:"user_id"`
	Name      string `json:"name"`
}

// View flattens a post with its preloaded author, media and likes.
func (p Post) View() PostView {
	view := PostView{
		ID:          p.ID,
		Content:     p.Content,
		Attachments: make([]string, 0, len(p.Media)),
		Author:      p.Author.Summary(),
		Likes:       make([]LikeView, 0, len(p.Likes)),
	}
	for _, m := range p.Media {
		view.Attachments = append(view.Attachments, m.Link)
	}
	for _, l := range p.Likes {
		view.Likes = append(view.Likes, LikeView{AccountID: l.AccountID, Name: l.Account.DisplayName})
	}
	return view
}
