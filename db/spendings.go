package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spendtrack/spendtrack-services/models"
)

// GetSpendingsByUser retrieves all spendings recorded by the given user.
func (d *ExpenseDB) GetSpendingsByUser(userID int64) ([]models.Spending, error) {
	rows, err := d.DB.Query(`
		SELECT id, name, day, value, user_id
		FROM spendings WHERE user_id = $1 ORDER BY day`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving spendings: %w", err)
	}
	defer rows.Close()

	spendings := []models.Spending{}
	for rows.Next() {
		var s models.Spending
		var name sql.NullString
		if err := rows.Scan(&s.ID, &name, &s.Day, &s.Value, &s.UserID); err != nil {
			return nil, fmt.Errorf("error scanning spending: %w", err)
		}
		s.Name = name.String
		spendings = append(spendings, s)
	}
	return spendings, rows.Err()
}

// CreateSpending inserts a new spending and returns its generated id. Returns
// ErrNotFound when the referenced user does not exist.
func (d *ExpenseDB) CreateSpending(s *models.Spending) (int64, error) {
	var id int64
	err := d.DB.QueryRow(`
		INSERT INTO spendings (name, day, value, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		nullableName(s.Name), s.Day, s.Value, s.UserID, time.Now().UTC()).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("error inserting spending: %w", err)
	}

	d.notify("spending", "created", id, s.UserID)
	return id, nil
}

// UpdateSpending overwrites all fields of an existing spending.
func (d *ExpenseDB) UpdateSpending(id int64, s *models.Spending) error {
	res, err := d.DB.Exec(`
		UPDATE spendings SET name = $1, day = $2, value = $3, user_id = $4
		WHERE id = $5`,
		nullableName(s.Name), s.Day, s.Value, s.UserID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("error updating spending: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	d.notify("spending", "updated", id, s.UserID)
	return nil
}

// DeleteSpending removes a spending by id.
func (d *ExpenseDB) DeleteSpending(id int64) error {
	res, err := d.DB.Exec(`DELETE FROM spendings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting spending: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	d.notify("spending", "deleted", id, 0)
	return nil
}

func nullableName(name string) sql.NullString {
	return sql.NullString{String: name, Valid: name != ""}
}
