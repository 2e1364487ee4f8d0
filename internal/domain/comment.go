package domain

import "time"

// Comment is a user remark attached to an app.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	AuthorID  uint      `gorm:"index;not null" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	AppID     uint      `gorm:"index;not null" json:"appId"`
	CreatedAt time.Time `json:"createdAt"`
}
