package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MemoryService_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService("user_id")

	created, err := svc.Create(ctx, Record{"user_id": "auth0|123", "name": "ada"}, Params{})
	require.NoError(t, err)
	assert.Equal(t, "auth0|123", created["user_id"])

	recs, err := svc.Find(ctx, Params{Query: map[string]any{"user_id": "auth0|123"}})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ada", recs[0]["name"])

	recs, err = svc.Find(ctx, Params{Query: map[string]any{"user_id": "auth0|missing"}})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func Test_MemoryService_AssignsIDs(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService("")

	first, err := svc.Create(ctx, Record{"name": "one"}, Params{})
	require.NoError(t, err)
	second, err := svc.Create(ctx, Record{"name": "two"}, Params{})
	require.NoError(t, err)

	assert.NotEmpty(t, first["id"])
	assert.NotEmpty(t, second["id"])
	assert.NotEqual(t, first["id"], second["id"])
}

func Test_MemoryService_DuplicateCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService("kid")

	_, err := svc.Create(ctx, Record{"kid": "k1", "pem": "a"}, Params{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Record{"kid": "k1", "pem": "b"}, Params{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordExists)
}

func Test_MemoryService_GetUpdatePatchRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService("id")

	_, err := svc.Create(ctx, Record{"id": "1", "name": "ada", "role": "admin"}, Params{})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "1", Params{})
	require.NoError(t, err)
	assert.Equal(t, "ada", got["name"])

	_, err = svc.Get(ctx, "2", Params{})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	updated, err := svc.Update(ctx, "1", Record{"name": "grace"}, Params{})
	require.NoError(t, err)
	assert.Equal(t, "grace", updated["name"])
	assert.Nil(t, updated["role"], "update replaces the whole record")

	patched, err := svc.Patch(ctx, "1", Record{"role": "user"}, Params{})
	require.NoError(t, err)
	assert.Equal(t, "grace", patched["name"])
	assert.Equal(t, "user", patched["role"])

	_, err = svc.Remove(ctx, "1", Params{})
	require.NoError(t, err)
	_, err = svc.Get(ctx, "1", Params{})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func Test_MemoryService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService("id")

	_, err := svc.Create(ctx, Record{"id": "1", "name": "ada"}, Params{})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "1", Params{})
	require.NoError(t, err)
	got["name"] = "mutated"

	again, err := svc.Get(ctx, "1", Params{})
	require.NoError(t, err)
	assert.Equal(t, "ada", again["name"], "callers must not reach the stored record")
}
