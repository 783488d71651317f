// ABOUTME: Connection state machine between two users
// ABOUTME: Handles requests, the addressee's single accept/decline decision and removal
package network

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/db"
	"github.com/harperreed/bizlink/models"
)

// Decision is the addressee's answer to a connection request.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

type ConnectionService struct {
	*base
}

// Request creates a pending connection from requesterID to addresseeID.
func (s *ConnectionService) Request(ctx context.Context, requesterID, addresseeID uuid.UUID, message string) (*models.Connection, error) {
	const op = "connections.request"
	if requesterID == addresseeID {
		return nil, invalidf(op, "cannot connect with yourself")
	}
	if err := s.requireUser(ctx, op, addresseeID, "addressee"); err != nil {
		return nil, err
	}

	now := s.now()
	conn := &models.Connection{
		ID:          uuid.New(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.ConnectionPending,
		Message:     message,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		existing, err := db.FindConnectionBetween(ctx, tx, requesterID, addresseeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return conflict(op, "a connection already exists between these users", nil)
		}
		if err := db.CreateConnection(ctx, tx, conn); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return conflict(op, "a connection already exists between these users", err)
			}
			return err
		}
		return s.record(ctx, tx, models.EntityConnection, conn.ID, requesterID, "request", "", string(conn.Status), now)
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Respond records the addressee's decision. A connection is decided exactly once.
func (s *ConnectionService) Respond(ctx context.Context, connectionID, actorID uuid.UUID, decision Decision) (*models.Connection, error) {
	const op = "connections.respond"

	var to models.ConnectionStatus
	switch decision {
	case DecisionAccept:
		to = models.ConnectionAccepted
	case DecisionDecline:
		to = models.ConnectionDeclined
	default:
		return nil, invalidf(op, "decision must be accept or decline, got %q", decision)
	}

	var conn *models.Connection
	err := s.inTx(ctx, op, func(tx *sql.Tx) error {
		var err error
		conn, err = db.GetConnection(ctx, tx, connectionID)
		if err != nil {
			return err
		}
		if conn == nil {
			return notFound(op, "connection")
		}
		if conn.AddresseeID != actorID {
			return forbidden(op, "only the addressee may respond to a connection request")
		}
		if conn.Status != models.ConnectionPending {
			return conflict(op, "connection request was already "+string(conn.Status), nil)
		}

		now := s.now()
		var acceptedAt *time.Time
		if to == models.ConnectionAccepted {
			acceptedAt = &now
		}
		ok, err := db.TransitionConnection(ctx, tx, conn.ID, models.ConnectionPending, to, acceptedAt, now)
		if err != nil {
			return err
		}
		if !ok {
			return conflict(op, "connection request was already answered", nil)
		}

		conn.Status = to
		conn.UpdatedAt = now
		if acceptedAt != nil {
			conn.AcceptedAt = acceptedAt
		}
		return s.record(ctx, tx, models.EntityConnection, conn.ID, actorID, string(decision), string(models.ConnectionPending), string(to), now)
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Remove deletes a connection in any state. Either party may remove it.
func (s *ConnectionService) Remove(ctx context.Context, connectionID, actorID uuid.UUID) error {
	const op = "connections.remove"
	return s.inTx(ctx, op, func(tx *sql.Tx) error {
		conn, err := db.GetConnection(ctx, tx, connectionID)
		if err != nil {
			return err
		}
		if conn == nil {
			return notFound(op, "connection")
		}
		if conn.RequesterID != actorID && conn.AddresseeID != actorID {
			return forbidden(op, "only a party to the connection may remove it")
		}
		if err := db.DeleteConnection(ctx, tx, conn.ID); err != nil {
			return err
		}
		return s.record(ctx, tx, models.EntityConnection, conn.ID, actorID, "remove", string(conn.Status), "", s.now())
	})
}

// Get returns a connection visible to actorID.
func (s *ConnectionService) Get(ctx context.Context, connectionID, actorID uuid.UUID) (*models.Connection, error) {
	const op = "connections.get"
	conn, err := db.GetConnection(ctx, s.db, connectionID)
	if err != nil {
		return nil, internal(op, "failed to load connection", err)
	}
	if conn == nil {
		return nil, notFound(op, "connection")
	}
	if conn.RequesterID != actorID && conn.AddresseeID != actorID {
		return nil, forbidden(op, "only a party to the connection may view it")
	}
	return conn, nil
}

// ListPending returns requests waiting on actorID's decision.
func (s *ConnectionService) ListPending(ctx context.Context, actorID uuid.UUID) ([]models.Connection, error) {
	return s.list(ctx, "connections.list_pending", actorID, db.ConnectionsIncoming, models.ConnectionPending)
}

// ListSent returns requests actorID made that are still pending.
func (s *ConnectionService) ListSent(ctx context.Context, actorID uuid.UUID) ([]models.Connection, error) {
	return s.list(ctx, "connections.list_sent", actorID, db.ConnectionsOutgoing, models.ConnectionPending)
}

// ListAccepted returns actorID's established connections.
func (s *ConnectionService) ListAccepted(ctx context.Context, actorID uuid.UUID) ([]models.Connection, error) {
	return s.list(ctx, "connections.list_accepted", actorID, db.ConnectionsEither, models.ConnectionAccepted)
}

func (s *ConnectionService) list(ctx context.Context, op string, actorID uuid.UUID, dir db.ConnectionDirection, status models.ConnectionStatus) ([]models.Connection, error) {
	conns, err := db.ListConnections(ctx, s.db, actorID, dir, status)
	if err != nil {
		return nil, internal(op, "failed to list connections", err)
	}
	return conns, nil
}
