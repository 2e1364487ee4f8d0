// Package policy holds the pure access decisions for the catalog. The
// functions here take the authenticated caller and a resource and answer
// yes or no; they never touch storage or the network.
package policy

import "github.com/manjunathhanchinal/BackendAppStore/internal/domain"

// Caller is the authenticated identity derived from a validated token.
type Caller struct {
	UserID uint
	Role   domain.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}

// CanView reports whether the caller may see the app at all: public apps
// are visible to everyone, private apps only to admins and the owner.
func CanView(app *domain.App, caller Caller) bool {
	if app.Visibility == domain.VisibilityPublic {
		return true
	}
	return caller.IsAdmin() || app.OwnerID == caller.UserID
}

// CanSeeDownloadCount reports whether the caller may see the app's
// download counter: admins always, otherwise only users who have
// downloaded the app themselves. A negative answer is not an error; the
// response simply carries the shape without the counter.
func CanSeeDownloadCount(caller Caller, hasDownloaded bool) bool {
	return caller.IsAdmin() || hasDownloaded
}

// CanMutate reports whether the caller may update or delete the app.
// The rule is owner OR admin.
func CanMutate(app *domain.App, caller Caller) bool {
	return app.OwnerID == caller.UserID || caller.IsAdmin()
}
