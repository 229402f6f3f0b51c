// Package models contains data structures for the application's domain models.
package models

import "time"

// Field length limits enforced by the schema and by input validation.
const (
	MaxHandleLength      = 128
	MaxDisplayNameLength = 30
	MaxContentLength     = 280
	MaxLinkLength        = 100
)

// Account is a registered member of the network. The handle doubles as the
// caller credential presented in the api-key header.
type Account struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Handle      string    `gorm:"type:varchar(128);uniqueIndex:idx_accounts_handle;not null" json:"handle"`
	DisplayName string    `gorm:"type:varchar(30);not null" json:"name"`
	CreatedAt   time.Time `json:"created_at"`

	Posts []Post `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Likes []Like `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// Summary returns the public {id, name} view of the account.
func (a Account) Summary() AccountSummary {
	return AccountSummary{ID: a.ID, Name: a.DisplayName}
}

// AccountSummary is the compact account shape embedded in profiles and feeds.
type AccountSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Profile is an account together with both sides of its follow graph.
type Profile struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	Followers []AccountSummary `json:"followers"`
	Following []AccountSummary `json:"following"`
}

// ProfileQuery selects an account by handle or by id. Handle wins when both
// are set.
type ProfileQuery struct {
	Handle string
	ID     uint
}

// Summaries converts accounts into their summary views, never returning nil.
func Summaries(accounts []Account) []AccountSummary {
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Summary())
	}
	return out
}
