// ABOUTME: Connection database operations
// ABOUTME: Stores connection requests under a canonical user pair with conditional status updates
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
)

// orderUserIDs returns the pair sorted so that either direction maps to the same key
func orderUserIDs(id1, id2 uuid.UUID) (string, string) {
	a, b := id1.String(), id2.String()
	if a < b {
		return a, b
	}
	return b, a
}

const connectionColumns = `id, requester_id, addressee_id, status, message, accepted_at, created_at, updated_at`

func CreateConnection(ctx context.Context, q Querier, conn *models.Connection) error {
	if conn.ID == uuid.Nil {
		conn.ID = uuid.New()
	}
	low, high := orderUserIDs(conn.RequesterID, conn.AddresseeID)

	_, err := q.ExecContext(ctx, `
		INSERT INTO connections (id, requester_id, addressee_id, pair_low, pair_high, status, message, accepted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, conn.ID.String(), conn.RequesterID.String(), conn.AddresseeID.String(), low, high,
		string(conn.Status), conn.Message, conn.AcceptedAt, conn.CreatedAt, conn.UpdatedAt)

	return translateError(err)
}

func scanConnection(row interface{ Scan(...any) error }) (*models.Connection, error) {
	c := &models.Connection{}
	var status string
	if err := row.Scan(&c.ID, &c.RequesterID, &c.AddresseeID, &status, &c.Message, &c.AcceptedAt, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Status = models.ConnectionStatus(status)
	return c, nil
}

func GetConnection(ctx context.Context, q Querier, id uuid.UUID) (*models.Connection, error) {
	c, err := scanConnection(q.QueryRowContext(ctx, `SELECT `+connectionColumns+` FROM connections WHERE id = ?`, id.String()))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindConnectionBetween looks up the connection for an unordered pair of users
func FindConnectionBetween(ctx context.Context, q Querier, a, b uuid.UUID) (*models.Connection, error) {
	low, high := orderUserIDs(a, b)
	c, err := scanConnection(q.QueryRowContext(ctx, `
		SELECT `+connectionColumns+` FROM connections WHERE pair_low = ? AND pair_high = ?
	`, low, high))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// TransitionConnection moves a connection out of status from. It reports false
// when the row was no longer in that status.
func TransitionConnection(ctx context.Context, q Querier, id uuid.UUID, from, to models.ConnectionStatus, acceptedAt *time.Time, now time.Time) (bool, error) {
	result, err := q.ExecContext(ctx, `
		UPDATE connections SET status = ?, accepted_at = COALESCE(?, accepted_at), updated_at = ?
		WHERE id = ? AND status = ?
	`, string(to), acceptedAt, now, id.String(), string(from))
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n == 1, err
}

func DeleteConnection(ctx context.Context, q Querier, id uuid.UUID) error {
	_, err := q.ExecContext(ctx, `DELETE FROM connections WHERE id = ?`, id.String())
	return err
}

// ConnectionDirection selects which side of a connection the user is on.
type ConnectionDirection int

const (
	ConnectionsIncoming ConnectionDirection = iota
	ConnectionsOutgoing
	ConnectionsEither
)

func ListConnections(ctx context.Context, q Querier, userID uuid.UUID, dir ConnectionDirection, status models.ConnectionStatus) ([]models.Connection, error) {
	query := `SELECT ` + connectionColumns + ` FROM connections WHERE `
	args := []any{}
	switch dir {
	case ConnectionsIncoming:
		query += `addressee_id = ?`
		args = append(args, userID.String())
	case ConnectionsOutgoing:
		query += `requester_id = ?`
		args = append(args, userID.String())
	default:
		query += `(requester_id = ? OR addressee_id = ?)`
		args = append(args, userID.String(), userID.String())
	}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []models.Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, *c)
	}
	return conns, rows.Err()
}

// ListAllAcceptedConnections returns every accepted connection, for graphing.
func ListAllAcceptedConnections(ctx context.Context, q Querier) ([]models.Connection, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+connectionColumns+` FROM connections WHERE status = ? ORDER BY created_at`, string(models.ConnectionAccepted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []models.Connection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, *c)
	}
	return conns, rows.Err()
}
