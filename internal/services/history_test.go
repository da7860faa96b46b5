package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/docflow/internal/common"
	"github.com/dmitrijs2005/docflow/internal/cryptox"
	"github.com/dmitrijs2005/docflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_LogAndList(t *testing.T) {
	env := newTestEnv(t, cryptox.PlainHasher{})
	admin := env.loginAdmin(t)
	ctx := context.Background()

	require.NoError(t, env.history.Log(ctx, admin, models.ActionSearch, "contract", "found 0 documents", nil))

	list, err := env.history.List(ctx, admin)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, models.ActionSearch, list[0].Type)
	assert.Equal(t, "contract", list[0].Object)
	assert.Equal(t, "Admin Root", list[0].Actor)
	assert.Nil(t, list[0].DocumentID)
}

func TestHistory_LogNeedsSession(t *testing.T) {
	env := newTestEnv(t, cryptox.PlainHasher{})
	err := env.history.Log(context.Background(), nil, models.ActionSearch, "", "", nil)
	require.ErrorIs(t, err, common.ErrForbidden)
}

func TestHistory_AdminOnly(t *testing.T) {
	env := newTestEnv(t, cryptox.PlainHasher{})
	user := env.loginUser(t)
	ctx := context.Background()

	_, err := env.history.List(ctx, user)
	require.ErrorIs(t, err, common.ErrForbidden)

	_, err = env.history.Clear(ctx, user)
	require.ErrorIs(t, err, common.ErrForbidden)

	_, err = env.history.List(ctx, nil)
	require.ErrorIs(t, err, common.ErrForbidden)
}

func TestHistory_ClearLeavesOneEntry(t *testing.T) {
	env := newTestEnv(t, cryptox.PlainHasher{})
	admin := env.loginAdmin(t)
	ctx := context.Background()

	before, err := env.history.List(ctx, admin)
	require.NoError(t, err)
	require.NotEmpty(t, before)

	removed, err := env.history.Clear(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(len(before)), removed)

	after, err := env.history.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, models.ActionClear, after[0].Type)
	assert.Equal(t, admin.UserID, after[0].UserID)
}
