package repo

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Встроенные SQL-миграции (отдельный каталог на каждый диалект).
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate накатывает все недостающие миграции для выбранного диалекта.
// Возвращает номер версии схемы после применения.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) (int64, error) {
	var (
		dir string
		gd  goose.Dialect
	)
	switch dialect {
	case DialectPostgres:
		dir, gd = "migrations/postgres", goose.DialectPostgres
	default:
		dir, gd = "migrations/sqlite", goose.DialectSQLite3
	}
	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return 0, fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(gd, db, sub)
	if err != nil {
		return 0, fmt.Errorf("migrations provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("migrate up: %w", err)
	}
	return provider.GetDBVersion(ctx)
}
