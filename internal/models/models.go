package models

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session can still authenticate requests.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type Visibility string

const (
	Public  Visibility = "PUBLIC"
	Private Visibility = "PRIVATE"
)

func (v Visibility) Valid() bool { return v == Public || v == Private }

type Post struct {
	ID         int64
	UserID     int64
	Author     string
	Title      string
	Content    string
	Visibility Visibility
	Views      int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// The OwnerID and Public methods below accept a nil receiver, which is what
// a failed lookup returns; a nil item is owned by nobody and public to nobody.

func (p *Post) OwnerID() int64 {
	if p == nil {
		return 0
	}
	return p.UserID
}

func (p *Post) SetOwnerID(id int64) { p.UserID = id }
func (p *Post) Public() bool        { return p != nil && p.Visibility == Public }

// Comment belongs to exactly one post. A comment has no visibility of its
// own; it can be seen wherever its post can.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Author    string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Comment) OwnerID() int64 {
	if c == nil {
		return 0
	}
	return c.UserID
}

func (c *Comment) SetOwnerID(id int64) { c.UserID = id }
func (c *Comment) Public() bool        { return c != nil }

type MemoCategory string

const (
	Daily    MemoCategory = "daily"
	Work     MemoCategory = "work"
	Personal MemoCategory = "personal"
)

var MemoCategories = []MemoCategory{Daily, Work, Personal}

func (c MemoCategory) Valid() bool {
	for _, known := range MemoCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Memo is a note readable only by its author. Category is nil when the memo
// is uncategorized.
type Memo struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	Category  *MemoCategory
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Memo) OwnerID() int64 {
	if m == nil {
		return 0
	}
	return m.UserID
}

func (m *Memo) SetOwnerID(id int64) { m.UserID = id }
func (m *Memo) Public() bool        { return false }

// IsRecent reports whether the memo was created within the last day.
func (m *Memo) IsRecent(now time.Time) bool {
	return now.Sub(m.CreatedAt) < 24*time.Hour
}

type PostSort string

const (
	SortByDate  PostSort = "date"
	SortByViews PostSort = "views"
)

// ParsePostSort maps a query value to a sort order, defaulting to date.
func ParsePostSort(s string) PostSort {
	if PostSort(s) == SortByViews {
		return SortByViews
	}
	return SortByDate
}

// ListOptions restricts a post listing. ViewerID 0 lists public posts only.
type ListOptions struct {
	ViewerID int64
	Sort     PostSort
	Limit    int
	Offset   int
}

// MemoFilter selects memos by category. An empty filter matches all memos;
// "none" matches uncategorized memos; unknown values are ignored.
type MemoFilter string

const (
	MemoFilterAll  MemoFilter = ""
	MemoFilterNone MemoFilter = "none"
)

// MemoListOptions pages through one owner's memos.
type MemoListOptions struct {
	Filter MemoFilter
	Limit  int
	Offset int
}
