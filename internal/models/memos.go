package models

import "database/sql"

const memoColumns = `id, user_id, title, content, category, created_at, updated_at`

func scanMemo(row scanner) (*Memo, error) {
	var m Memo
	var category sql.NullString
	if err := row.Scan(&m.ID, &m.UserID, &m.Title, &m.Content, &category, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if category.Valid {
		c := MemoCategory(category.String)
		m.Category = &c
	}
	return &m, nil
}

func nullCategory(c *MemoCategory) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*c), Valid: true}
}

func CreateMemo(db *sql.DB, m *Memo) error {
	ts := now()
	res, err := db.Exec(`INSERT INTO memos (user_id, title, content, category, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Title, m.Content, nullCategory(m.Category), ts, ts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID, m.CreatedAt, m.UpdatedAt = id, ts, ts
	return nil
}

func GetMemo(db *sql.DB, id int64) (*Memo, error) {
	m, err := scanMemo(db.QueryRow(`SELECT `+memoColumns+` FROM memos WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// memoWhere narrows the owner's memos by filter.
func memoWhere(ownerID int64, filter MemoFilter) (string, []any) {
	where := ` WHERE user_id = ?`
	args := []any{ownerID}
	switch {
	case filter == MemoFilterNone:
		where += ` AND category IS NULL`
	case MemoCategory(filter).Valid():
		where += ` AND category = ?`
		args = append(args, string(filter))
	}
	return where, args
}

// ListMemos returns the owner's memos newest first, narrowed by opts.Filter.
func ListMemos(db *sql.DB, ownerID int64, opts MemoListOptions) ([]*Memo, error) {
	where, args := memoWhere(ownerID, opts.Filter)
	q := `SELECT ` + memoColumns + ` FROM memos` + where + ` ORDER BY created_at DESC, id DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ? OFFSET ?`
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var memos []*Memo
	for rows.Next() {
		m, err := scanMemo(rows)
		if err != nil {
			return nil, err
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

// CountMemos counts the memos ListMemos would return without paging.
func CountMemos(db *sql.DB, ownerID int64, filter MemoFilter) (int, error) {
	where, args := memoWhere(ownerID, filter)
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM memos`+where, args...).Scan(&n)
	return n, err
}

func UpdateMemo(db *sql.DB, m *Memo) error {
	ts := now()
	if ts.Before(m.CreatedAt) {
		ts = m.CreatedAt
	}
	res, err := db.Exec(`UPDATE memos SET title = ?, content = ?, category = ?, updated_at = ? WHERE id = ?`,
		m.Title, m.Content, nullCategory(m.Category), ts, m.ID)
	if err != nil {
		return err
	}
	if err := expectOne(res); err != nil {
		return err
	}
	m.UpdatedAt = ts
	return nil
}

func DeleteMemo(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM memos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}
