// ABOUTME: Company database operations
// ABOUTME: Handles CRUD operations and company lookups
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

func CreateCompany(ctx context.Context, q Querier, company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := q.ExecContext(ctx, `
		INSERT INTO companies (id, name, industry, website, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.Industry, company.Website, company.CreatedAt, company.UpdatedAt)

	return translateError(err)
}

func GetCompany(ctx context.Context, q Querier, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, industry, website, created_at, updated_at
		FROM companies WHERE id = ?
	`, id.String()).Scan(
		&company.ID,
		&company.Name,
		&company.Industry,
		&company.Website,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func FindCompanies(ctx context.Context, q Querier, query string, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = 10
	}

	searchPattern := "%" + strings.ToLower(query) + "%"
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, industry, website, created_at, updated_at
		FROM companies
		WHERE LOWER(name) LIKE ? OR LOWER(industry) LIKE ?
		ORDER BY name ASC
		LIMIT ?
	`, searchPattern, searchPattern, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Industry, &c.Website, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

func FindCompanyByName(ctx context.Context, q Querier, name string) (*models.Company, error) {
	company := &models.Company{}
	err := q.QueryRowContext(ctx, `
		SELECT id, name, industry, website, created_at, updated_at
		FROM companies WHERE LOWER(name) = LOWER(?)
	`, name).Scan(
		&company.ID,
		&company.Name,
		&company.Industry,
		&company.Website,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func DeleteCompany(ctx context.Context, q Querier, id uuid.UUID) error {
	// Members keep their accounts; only the affiliation goes away
	if _, err := q.ExecContext(ctx, `UPDATE users SET company_id = NULL WHERE company_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to detach users: %w", err)
	}

	_, err := q.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id.String())
	return err
}
