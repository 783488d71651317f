// ABOUTME: User database operations and the member directory
// ABOUTME: Handles user records, membership status and active-member lookups
package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

const userColumns = `id, name, email, company_id, position, is_active, membership_status, created_at, updated_at`

func CreateUser(ctx context.Context, q Querier, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.MembershipStatus == "" {
		user.MembershipStatus = models.MembershipPending
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID.String(), user.Name, user.Email, nullableID(user.CompanyID), user.Position,
		user.IsActive, string(user.MembershipStatus), user.CreatedAt, user.UpdatedAt)

	return translateError(err)
}

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var status string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CompanyID, &u.Position, &u.IsActive, &status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.MembershipStatus = models.MembershipStatus(status)
	return u, nil
}

func GetUser(ctx context.Context, q Querier, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func FindUsers(ctx context.Context, q Querier, query string, companyID *uuid.UUID, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 50
	}

	searchPattern := "%" + strings.ToLower(query) + "%"
	sqlQuery := `SELECT ` + userColumns + ` FROM users WHERE (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)`
	args := []any{searchPattern, searchPattern}
	if companyID != nil {
		sqlQuery += ` AND company_id = ?`
		args = append(args, companyID.String())
	}
	sqlQuery += ` ORDER BY name ASC LIMIT ?`
	args = append(args, limit)

	rows, err := q.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}

	return users, rows.Err()
}

func SetMembership(ctx context.Context, q Querier, id uuid.UUID, isActive bool, status models.MembershipStatus) error {
	_, err := q.ExecContext(ctx, `
		UPDATE users SET is_active = ?, membership_status = ?, updated_at = ?
		WHERE id = ?
	`, isActive, string(status), time.Now().UTC(), id.String())
	return err
}

// Directory answers identity questions for the networking services.
type Directory struct {
	db *sql.DB
}

func NewDirectory(database *sql.DB) *Directory {
	return &Directory{db: database}
}

func (d *Directory) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id.String()).Scan(&n)
	return n > 0, err
}

func (d *Directory) IsActiveMember(ctx context.Context, id uuid.UUID) (bool, error) {
	user, err := GetUser(ctx, d.db, id)
	if err != nil || user == nil {
		return false, err
	}
	return user.IsActiveMember(), nil
}

func nullableID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
