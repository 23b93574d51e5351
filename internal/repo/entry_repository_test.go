package repo

import (
	"context"
	"testing"

	"VaultKeeper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// хелпер: пользователь + тип аккаунта
func mkAccountType(t *testing.T, s *Store) *model.AccountType {
	t.Helper()
	ctx := context.Background()
	u, err := s.Users.Create(ctx, "Alice")
	require.NoError(t, err)
	at, err := s.AccountTypes.Create(ctx, u.ID, "Bank")
	require.NoError(t, err)
	return at
}

func TestEntryRepository_OrderByKeyIgnoresCase(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := mkAccountType(t, s)

	for _, k := range []string{"zebra", "Apple", "banana"} {
		_, err := s.Entries.Create(ctx, at.ID, k, "v-"+k)
		require.NoError(t, err)
	}
	entries, err := s.Entries.ListByAccountType(ctx, at.ID)
	require.NoError(t, err)
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"Apple", "banana", "zebra"}, keys)
}

func TestEntryRepository_GetValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := mkAccountType(t, s)

	multi := "line one\nline two\n"
	_, err := s.Entries.Create(ctx, at.ID, "pin", "1234")
	require.NoError(t, err)
	_, err = s.Entries.Create(ctx, at.ID, "Notes", multi)
	require.NoError(t, err)

	v, ok, err := s.Entries.GetValue(ctx, at.ID, "pin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1234", v)

	v, ok, err = s.Entries.GetValue(ctx, at.ID, "notes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, multi, v)

	// отсутствие не ошибка
	v, ok, err = s.Entries.GetValue(ctx, at.ID, "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)

	_, ok, err = s.Entries.GetValue(ctx, "no-such-type", "pin")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Entries.GetValue(ctx, at.ID, "  ")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestEntryRepository_CreateRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := mkAccountType(t, s)

	_, err := s.Entries.Create(ctx, "no-such-type", "pin", "1")
	assert.ErrorIs(t, err, ErrConstraint)

	_, err = s.Entries.Create(ctx, at.ID, " ", "1")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Entries.Create(ctx, at.ID, "pin", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Entries.Create(ctx, at.ID, "PIN", "1")
	require.NoError(t, err)
	_, err = s.Entries.Create(ctx, at.ID, "pin", "2")
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestEntryRepository_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := mkAccountType(t, s)

	pin, err := s.Entries.Create(ctx, at.ID, "pin", "1234")
	require.NoError(t, err)
	_, err = s.Entries.Create(ctx, at.ID, "login", "alice")
	require.NoError(t, err)

	// смена значения без смены ключа
	upd, err := s.Entries.Update(ctx, pin.ID, "pin", "4321")
	require.NoError(t, err)
	assert.Equal(t, at.ID, upd.AccountTypeID)
	v, _, err := s.Entries.GetValue(ctx, at.ID, "pin")
	require.NoError(t, err)
	assert.Equal(t, "4321", v)

	// ключ занят соседом
	_, err = s.Entries.Update(ctx, pin.ID, "LOGIN", "x")
	assert.ErrorIs(t, err, ErrConstraint)

	// переименование ключа
	_, err = s.Entries.Update(ctx, pin.ID, "code", "4321")
	require.NoError(t, err)
	_, ok, err := s.Entries.GetValue(ctx, at.ID, "pin")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Entries.Update(ctx, "missing", "k", "v")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Entries.Update(ctx, pin.ID, "code", " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEntryRepository_DeleteIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := mkAccountType(t, s)

	e, err := s.Entries.Create(ctx, at.ID, "pin", "1234")
	require.NoError(t, err)

	c, err := s.Entries.Delete(ctx, e.ID)
	require.NoError(t, err)
	if assert.Len(t, c.Entries, 1) {
		assert.Equal(t, at.ID, c.Entries[0].AccountTypeID)
	}

	c, err = s.Entries.Delete(ctx, e.ID)
	assert.NoError(t, err)
	assert.True(t, c.Empty())

	_, err = s.Entries.GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Entries.FindByKey(ctx, at.ID, "pin")
	assert.ErrorIs(t, err, ErrNotFound)
}
