package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// now is the server-assigned timestamp for every write.
func now() time.Time {
	return time.Now().UTC()
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func CreateUser(db *sql.DB, email, username, passwordHash string) (int64, error) {
	res, err := db.Exec(`INSERT INTO users (email, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		email, username, passwordHash, now())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "users.email") {
				return 0, ErrDuplicateEmail
			}
			if strings.Contains(sqliteErr.Error(), "users.username") {
				return 0, ErrDuplicateUsername
			}
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UserExists reports which of email or username is already taken.
func UserExists(db *sql.DB, email, username string) error {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateEmail
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrDuplicateUsername
	}
	return nil
}

func GetUserByEmail(db *sql.DB, email string) (*User, error) {
	row := db.QueryRow(`SELECT id, email, username, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	row := db.QueryRow(`SELECT id, email, username, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// CreateSession revokes the user's live sessions and opens a new one.
func CreateSession(db *sql.DB, userID int64, sessionID string, expires time.Time) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := now()
	if _, err := tx.Exec(`UPDATE sessions SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL`, ts, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		sessionID, userID, ts, expires.UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

func GetSession(db *sql.DB, id string) (*Session, error) {
	row := db.QueryRow(`SELECT id, user_id, created_at, expires_at, revoked_at FROM sessions WHERE id = ?`, id)
	var s Session
	var revoked sql.NullTime
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt, &revoked); err != nil {
		return nil, notFound(err)
	}
	if revoked.Valid {
		s.RevokedAt = &revoked.Time
	}
	return &s, nil
}

func RevokeSession(db *sql.DB, id string) error {
	_, err := db.Exec(`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`, now(), id)
	return err
}
