package models

import "time"

// Follow is a directed edge: FollowerID follows FollowingID.
// The pair is the primary key, and an account may not follow itself.
type Follow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false;check:chk_follows_not_self,follower_id <> following_id" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false;index:idx_follows_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  Account `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following Account `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
