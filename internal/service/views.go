package service

import (
	"time"

	"github.com/manjunathhanchinal/BackendAppStore/internal/domain"
	"github.com/manjunathhanchinal/BackendAppStore/internal/policy"
)

// OwnerView is the denormalized owner embed returned by the by-name lookup.
type OwnerView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// AppView is the response shape for callers who may not see the download
// counter. AppViewWithDownloads is the variant for callers who may; the
// access policy picks one of the two explicitly rather than blanking a
// field.
type AppView struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Version     float64           `json:"version"`
	ReleaseDate *time.Time        `json:"releaseDate,omitempty"`
	Rating      float64           `json:"rating"`
	Genre       string            `json:"genre"`
	Visibility  domain.Visibility `json:"visibility"`
	OwnerID     uint              `json:"ownerId"`
	Owner       *OwnerView        `json:"owner,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type AppViewWithDownloads struct {
	AppView
	DownloadCount uint64 `json:"downloadCount"`
}

func newAppView(app *domain.App) AppView {
	return AppView{
		ID:          app.ID,
		Name:        app.Name,
		Description: app.Description,
		Version:     app.Version,
		ReleaseDate: app.ReleaseDate,
		Rating:      app.Rating,
		Genre:       app.Genre,
		Visibility:  app.Visibility,
		OwnerID:     app.OwnerID,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

// shapeApp selects the response variant for one app based on what the
// caller is allowed to see.
func shapeApp(app *domain.App, caller policy.Caller, hasDownloaded bool) interface{} {
	view := newAppView(app)
	if policy.CanSeeDownloadCount(caller, hasDownloaded) {
		return AppViewWithDownloads{AppView: view, DownloadCount: app.DownloadCount}
	}
	return view
}

// CommentView is a comment with its author's username expanded.
type CommentView struct {
	ID        uint      `json:"id"`
	Comment   string    `json:"comment"`
	AppID     uint      `json:"appId"`
	Author    OwnerView `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func newCommentView(c *domain.Comment) CommentView {
	return CommentView{
		ID:      c.ID,
		Comment: c.Comment,
		AppID:   c.AppID,
		Author: OwnerView{
			ID:       c.AuthorID,
			Username: c.Author.Username,
		},
		CreatedAt: c.CreatedAt,
	}
}
