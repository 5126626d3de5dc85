package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spendtrack/spendtrack-services/models"
)

// GetGroups retrieves all groups with their nested membership. Each member
// carries their spendings; password hashes are never serialized.
func (d *ExpenseDB) GetGroups() ([]models.Group, error) {
	rows, err := d.DB.Query(`SELECT id, name, password_hash FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.PasswordHash); err != nil {
			return nil, fmt.Errorf("error scanning groups: %w", err)
		}

		members, err := d.getGroupMembers(g.ID)
		if err != nil {
			return nil, fmt.Errorf("error retrieving members for group: %w", err)
		}
		g.Users = members
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GetGroupByID retrieves a single group with its nested membership.
// Returns a nil group and nil error when no group matches.
func (d *ExpenseDB) GetGroupByID(id int64) (*models.Group, error) {
	row := d.DB.QueryRow(`SELECT id, name, password_hash FROM groups WHERE id = $1`, id)

	var g models.Group
	if err := row.Scan(&g.ID, &g.Name, &g.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			// Group does not exist, return nil group and nil error
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning group: %w", err)
	}

	members, err := d.getGroupMembers(g.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving members for group: %w", err)
	}
	g.Users = members

	return &g, nil
}

// CreateGroupWithOwner inserts a new group and assigns the creating user to it
// in a single transaction, so a crash cannot leave a group without members.
func (d *ExpenseDB) CreateGroupWithOwner(name, passwordHash string, ownerID int64) (int64, error) {
	tx, err := d.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}

	var groupID int64
	err = tx.QueryRow(`
		INSERT INTO groups (name, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`,
		name, passwordHash, time.Now().UTC()).Scan(&groupID)
	if err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("error inserting group: %w", err)
	}

	res, err := tx.Exec(`UPDATE users SET group_id = $1 WHERE id = $2`,
		groupID, ownerID)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("error assigning group owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("error checking affected rows: %w", err)
	}
	if affected == 0 {
		tx.Rollback()
		return 0, ErrNotFound
	}

	if err := d.CommitTransaction(tx); err != nil {
		return 0, err
	}

	d.notify("group", "created", groupID, ownerID)
	return groupID, nil
}

// getGroupMembers retrieves the redacted members of a group with their spendings.
func (d *ExpenseDB) getGroupMembers(groupID int64) ([]models.GroupMember, error) {
	rows, err := d.DB.Query(`
		SELECT id, name, email FROM users WHERE group_id = $1 ORDER BY id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving group members: %w", err)
	}
	defer rows.Close()

	members := []models.GroupMember{}
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("error scanning group member: %w", err)
		}

		spendings, err := d.GetSpendingsByUser(m.ID)
		if err != nil {
			return nil, err
		}
		m.Spendings = spendings
		members = append(members, m)
	}
	return members, rows.Err()
}
