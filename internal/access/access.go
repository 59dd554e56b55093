// Package access decides what a viewer may see and change.
//
// Every decision is a pure function of an item snapshot and the viewer
// making the request. Nothing here touches storage or request state.
package access

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Viewer is the identity evaluating a request. The zero value is Anonymous.
type Viewer struct {
	userID int64
}

// Anonymous is the sentinel for an unauthenticated requester.
var Anonymous = Viewer{}

// Authenticated returns the viewer for a registered user. Registered IDs are
// positive; anything else yields Anonymous.
func Authenticated(userID int64) Viewer {
	if userID <= 0 {
		return Anonymous
	}
	return Viewer{userID: userID}
}

func (v Viewer) IsAuthenticated() bool { return v.userID > 0 }

// UserID returns the viewer's user ID, or 0 for Anonymous.
func (v Viewer) UserID() int64 { return v.userID }

func (v Viewer) owns(item Owned) bool {
	return v.IsAuthenticated() && item.OwnerID() == v.userID
}

// Owned is any content item with an immutable author.
type Owned interface {
	OwnerID() int64
}

// Item is an owned item that may be visible to viewers other than its owner.
type Item interface {
	Owned
	Public() bool
}

// Owner is an item whose author is stamped at creation.
type Owner interface {
	Owned
	SetOwnerID(id int64)
}

// Decision is the outcome of a single authorization check.
type Decision int

const (
	Allow Decision = iota
	NotFound
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Err returns nil for Allow and the matching sentinel otherwise.
func (d Decision) Err() error {
	switch d {
	case Allow:
		return nil
	case NotFound:
		return ErrNotFound
	default:
		return ErrForbidden
	}
}

// IsVisible reports whether v may see item in a listing or a detail fetch.
func IsVisible(item Item, v Viewer) bool {
	return item.Public() || v.owns(item)
}

func CanCreate(v Viewer) bool { return v.IsAuthenticated() }

func CanModify(item Owned, v Viewer) bool { return v.owns(item) }

func CanDelete(item Owned, v Viewer) bool { return v.owns(item) }

// AssignOwner stamps v as the author of a new item, discarding whatever
// owner the caller put there.
func AssignOwner(item Owner, v Viewer) Decision {
	if !CanCreate(v) {
		return Forbidden
	}
	item.SetOwnerID(v.userID)
	return Allow
}

// FilterListing keeps the items visible to v, in their original order.
func FilterListing[T Item](items []T, v Viewer) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if IsVisible(item, v) {
			out = append(out, item)
		}
	}
	return out
}

// Read decides a detail fetch. A nil item means no row matched; it is
// reported exactly like an item the viewer cannot see. Content types
// implement Item with nil-safe methods, so a typed nil pointer is never
// visible either.
func Read(item Item, v Viewer) Decision {
	if item == nil || !IsVisible(item, v) {
		return NotFound
	}
	return Allow
}

// Write decides an update or delete. Items the viewer cannot see stay
// NotFound so that private content is never disclosed; Forbidden is only
// returned for items the viewer can already see.
func Write(item Item, v Viewer) Decision {
	if d := Read(item, v); d != Allow {
		return d
	}
	if !CanModify(item, v) {
		return Forbidden
	}
	return Allow
}
