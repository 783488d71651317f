// ABOUTME: Tests for user, company and directory database operations
// ABOUTME: Verifies membership handling and active-member lookups
package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/bizlink/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	company := &models.Company{Name: "Acme Corp", Industry: "Manufacturing"}
	require.NoError(t, CreateCompany(ctx, db, company))

	user := &models.User{Name: "Ann Lee", Email: "ann@acme.test", CompanyID: &company.ID, Position: "CEO", IsActive: true}
	require.NoError(t, CreateUser(ctx, db, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, models.MembershipPending, user.MembershipStatus)

	got, err := GetUser(ctx, db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ann Lee", got.Name)
	require.NotNil(t, got.CompanyID)
	assert.Equal(t, company.ID, *got.CompanyID)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsActiveMember())
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	got, err := GetUser(context.Background(), db, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "alicia")

	users, err := FindUsers(ctx, db, "ali", nil, 10)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
}

func TestDirectory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	dir := NewDirectory(db)

	active := seedUser(t, db, "active")
	inactive := seedUser(t, db, "inactive")
	require.NoError(t, SetMembership(ctx, db, inactive, true, models.MembershipSuspended))

	exists, err := dir.UserExists(ctx, active)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = dir.UserExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)

	ok, err := dir.IsActiveMember(ctx, active)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dir.IsActiveMember(ctx, inactive)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = dir.IsActiveMember(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteCompanyDetachesUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	company := &models.Company{Name: "Initech"}
	require.NoError(t, CreateCompany(ctx, db, company))
	user := &models.User{Name: "Peter", CompanyID: &company.ID, IsActive: true, MembershipStatus: models.MembershipActive}
	require.NoError(t, CreateUser(ctx, db, user))

	require.NoError(t, DeleteCompany(ctx, db, company.ID))

	got, err := GetUser(ctx, db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CompanyID)

	companies, err := FindCompanies(ctx, db, "init", 10)
	require.NoError(t, err)
	assert.Empty(t, companies)
}
