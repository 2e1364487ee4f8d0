package domain

import "time"

// Visibility controls whether non-owners may see an app.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// App is a published catalog entry. DownloadCount counts every download
// call; the downloads table tracks unique downloaders only, so the count
// may exceed the number of downloaders.
type App struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:191;not null;index" json:"name"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	Version       float64    `gorm:"not null" json:"version"`
	ReleaseDate   *time.Time `json:"releaseDate,omitempty"`
	Rating        float64    `gorm:"not null;default:0" json:"rating"`
	Genre         string     `gorm:"size:64;not null" json:"genre"`
	Visibility    Visibility `gorm:"size:16;not null;default:public" json:"visibility"`
	OwnerID       uint       `gorm:"index;not null" json:"ownerId"`
	Owner         User       `gorm:"foreignKey:OwnerID" json:"-"`
	DownloadCount uint64     `gorm:"not null;default:0" json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Download records that a user has downloaded an app at least once.
// The composite primary key gives the set its no-duplicates semantics.
type Download struct {
	AppID     uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
}
