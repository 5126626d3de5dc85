package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spendtrack/spendtrack-services/models"
)

// CreateUser inserts a new user and returns its generated id.
func (d *ExpenseDB) CreateUser(name, email, passwordHash string) (int64, error) {
	var id int64
	err := d.DB.QueryRow(`
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		name, email, passwordHash, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	d.notify("user", "created", id, id)
	return id, nil
}

// GetUserByEmail retrieves a user by email, including the password hash.
// Returns a nil user and nil error when no user matches.
func (d *ExpenseDB) GetUserByEmail(email string) (*models.User, error) {
	row := d.DB.QueryRow(`
		SELECT id, name, email, password_hash, group_id, created_at
		FROM users WHERE email = $1`, email)

	return scanUser(row)
}

// GetUserByID retrieves a user by id. Returns a nil user and nil error when
// no user matches.
func (d *ExpenseDB) GetUserByID(id int64) (*models.User, error) {
	row := d.DB.QueryRow(`
		SELECT id, name, email, password_hash, group_id, created_at
		FROM users WHERE id = $1`, id)

	return scanUser(row)
}

// SetUserGroup updates a user's group membership. A nil groupID clears it.
func (d *ExpenseDB) SetUserGroup(userID int64, groupID *int64) error {
	res, err := d.DB.Exec(`UPDATE users SET group_id = $1 WHERE id = $2`,
		groupID, userID)
	if err != nil {
		return fmt.Errorf("error updating user group: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if groupID != nil {
		d.notify("group", "joined", *groupID, userID)
	} else {
		d.notify("group", "left", 0, userID)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var groupID sql.NullInt64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &groupID,
		&u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			// User does not exist, return nil user and nil error
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning user: %w", err)
	}
	if groupID.Valid {
		u.GroupID = &groupID.Int64
	}
	return &u, nil
}
