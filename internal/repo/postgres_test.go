package repo

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Запускается только при заданном VAULT_TEST_POSTGRES_DSN (пустая БД).
func TestPostgres_CaseInsensitiveUniquenessAndCascade(t *testing.T) {
	dsn := os.Getenv("VAULT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("VAULT_TEST_POSTGRES_DSN is not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, DialectPostgres, s.Dialect())

	u, err := s.Users.Create(ctx, "PgUser")
	require.NoError(t, err)
	defer func() { _, _ = s.Users.Delete(ctx, u.ID) }()

	_, err = s.Users.Create(ctx, "pguser")
	assert.ErrorIs(t, err, ErrConstraint)

	at, err := s.AccountTypes.Create(ctx, u.ID, "Bank")
	require.NoError(t, err)
	_, err = s.Entries.Create(ctx, at.ID, "pin", "1234")
	require.NoError(t, err)

	c, err := s.Users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, c.Entries, 1)
}
