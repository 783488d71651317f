package handlers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/harperreed/bizlink/models"
	"github.com/harperreed/bizlink/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	ts, err := parseTime("meeting_date", "2026-05-07T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 8, ts.Hour())

	ts, err = parseTime("meeting_date", "2026-05-07")
	require.NoError(t, err)
	assert.Equal(t, 7, ts.Day())

	_, err = parseTime("meeting_date", "next tuesday")
	assert.ErrorContains(t, err, "invalid meeting_date")

	_, err = parseTime("meeting_date", "")
	assert.ErrorContains(t, err, "meeting_date is required")
}

func TestParseID(t *testing.T) {
	_, err := parseID("meeting_id", "")
	assert.ErrorContains(t, err, "meeting_id is required")

	_, err = parseID("meeting_id", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid meeting_id")

	id, err := parseOptionalID("company_id", "")
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestToolErrorPrefixesKind(t *testing.T) {
	err := toolError(fmt.Errorf("wrapped: %w", &network.Error{Kind: network.KindForbidden, Op: "meetings.accept", Msg: "only the requested user may accept"}))
	assert.EqualError(t, err, "forbidden: only the requested user may accept")

	internal := &network.Error{Kind: network.KindInternal, Op: "meetings.get", Msg: "failed", Err: errors.New("disk full")}
	assert.Same(t, error(internal), toolError(internal))

	plain := errors.New("boom")
	assert.Equal(t, plain, toolError(plain))
}

func TestDirectoryHandlers(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	h := NewDirectoryHandlers(database)

	_, _, err := h.AddMember(ctx, nil, AddMemberInput{})
	assert.ErrorContains(t, err, "name is required")

	_, alice, err := h.AddMember(ctx, nil, AddMemberInput{Name: "Alice", Email: "alice@example.com", CompanyName: "Acme Corp", Active: true})
	require.NoError(t, err)
	require.NotNil(t, alice.CompanyID)
	assert.True(t, alice.ActiveMember)

	// same company is reused
	_, bob, err := h.AddMember(ctx, nil, AddMemberInput{Name: "Bob", CompanyName: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, *alice.CompanyID, *bob.CompanyID)
	assert.Equal(t, string(models.MembershipPending), bob.MembershipStatus)
	assert.False(t, bob.ActiveMember)

	_, found, err := h.FindMembers(ctx, nil, FindMembersInput{CompanyID: *alice.CompanyID})
	require.NoError(t, err)
	assert.Len(t, found.Members, 2)

	_, companies, err := h.FindCompanies(ctx, nil, FindCompaniesInput{Query: "acme"})
	require.NoError(t, err)
	require.Len(t, companies.Companies, 1)

	_, _, err = h.SetMembership(ctx, nil, SetMembershipInput{MemberID: bob.ID, Status: "gold"})
	assert.ErrorContains(t, err, "invalid status")

	_, bob, err = h.SetMembership(ctx, nil, SetMembershipInput{MemberID: bob.ID, Status: "active"})
	require.NoError(t, err)
	assert.True(t, bob.ActiveMember)
}
