package models

import (
	"database/sql"
)

const postColumns = `p.id, p.user_id, u.username, p.title, p.content, p.visibility, p.views, p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*Post, error) {
	var p Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Author, &p.Title, &p.Content, &p.Visibility, &p.Views, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost inserts p, which must already carry its author, and fills in
// its ID and timestamps.
func CreatePost(db *sql.DB, p *Post) error {
	if p.Visibility == "" {
		p.Visibility = Public
	}
	ts := now()
	res, err := db.Exec(`INSERT INTO posts (user_id, title, content, visibility, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Title, p.Content, p.Visibility, ts, ts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = id, ts, ts
	return nil
}

func GetPost(db *sql.DB, id int64) (*Post, error) {
	row := db.QueryRow(`SELECT `+postColumns+` FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// ListPosts returns the posts a viewer may see: public ones plus the
// viewer's own private ones.
func ListPosts(db *sql.DB, opts ListOptions) ([]*Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.id = p.user_id
        WHERE p.visibility = 'PUBLIC' OR p.user_id = ?`
	switch opts.Sort {
	case SortByViews:
		q += ` ORDER BY p.views DESC, p.created_at DESC, p.id DESC`
	default:
		q += ` ORDER BY p.created_at DESC, p.id DESC`
	}
	args := []any{opts.ViewerID}
	if opts.Limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, opts.Limit, opts.Offset)
	}
	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// CountPosts counts the posts ListPosts would return without paging.
func CountPosts(db *sql.DB, viewerID int64) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM posts WHERE visibility = 'PUBLIC' OR user_id = ?`, viewerID).Scan(&n)
	return n, err
}

// UpdatePost writes the mutable fields of p. The author is never written.
func UpdatePost(db *sql.DB, p *Post) error {
	ts := now()
	if ts.Before(p.CreatedAt) {
		ts = p.CreatedAt
	}
	res, err := db.Exec(`UPDATE posts SET title = ?, content = ?, visibility = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Content, p.Visibility, ts, p.ID)
	if err != nil {
		return err
	}
	if err := expectOne(res); err != nil {
		return err
	}
	p.UpdatedAt = ts
	return nil
}

// DeletePost removes a post together with its comments.
func DeletePost(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func IncrementPostViews(db *sql.DB, id int64) error {
	_, err := db.Exec(`UPDATE posts SET views = views + 1 WHERE id = ?`, id)
	return err
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
