package models

import "database/sql"

const commentColumns = `c.id, c.post_id, c.user_id, u.username, c.content, c.created_at, c.updated_at`

func scanComment(row scanner) (*Comment, error) {
	var c Comment
	if err := row.Scan(&c.ID, &c.PostID, &c.UserID, &c.Author, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func CreateComment(db *sql.DB, c *Comment) error {
	ts := now()
	res, err := db.Exec(`INSERT INTO comments (post_id, user_id, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.PostID, c.UserID, c.Content, ts, ts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = id, ts, ts
	return nil
}

func GetComment(db *sql.DB, id int64) (*Comment, error) {
	row := db.QueryRow(`SELECT `+commentColumns+` FROM comments c JOIN users u ON u.id = c.user_id WHERE c.id = ?`, id)
	c, err := scanComment(row)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListComments returns a post's comments oldest first.
func ListComments(db *sql.DB, postID int64) ([]*Comment, error) {
	rows, err := db.Query(`SELECT `+commentColumns+` FROM comments c JOIN users u ON u.id = c.user_id
        WHERE c.post_id = ? ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cs []*Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, rows.Err()
}

func UpdateComment(db *sql.DB, c *Comment) error {
	ts := now()
	if ts.Before(c.CreatedAt) {
		ts = c.CreatedAt
	}
	res, err := db.Exec(`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`, c.Content, ts, c.ID)
	if err != nil {
		return err
	}
	if err := expectOne(res); err != nil {
		return err
	}
	c.UpdatedAt = ts
	return nil
}

func DeleteComment(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}
