package repo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Dialect задаёт тип СУБД, на которой открыт store.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// sqlitePragmas применяются к каждому соединению через DSN modernc.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// DetectDialect определяет диалект по строке подключения: URL/DSN Postgres
// или путь к файлу SQLite.
func DetectDialect(dsn string) Dialect {
	d := strings.TrimSpace(dsn)
	if strings.HasPrefix(d, "postgres://") || strings.HasPrefix(d, "postgresql://") {
		return DialectPostgres
	}
	if strings.Contains(d, "host=") && strings.Contains(d, "dbname=") {
		return DialectPostgres
	}
	return DialectSQLite
}

// InitDB открывает БД (SQLite-файл или Postgres), накатывает миграции
// и возвращает готовый *gorm.DB.
func InitDB(ctx context.Context, dsn string, log *zap.SugaredLogger) (*gorm.DB, Dialect, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if strings.TrimSpace(dsn) == "" {
		return nil, "", errors.New("init db: empty dsn")
	}
	dialect := DetectDialect(dsn)

	cfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch dialect {
	case DialectPostgres:
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		if err := os.MkdirAll(filepath.Dir(dsn), 0o700); err != nil {
			return nil, "", fmt.Errorf("init db: create parent dir: %w", err)
		}
		dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(dsn)}
		db, err = gorm.Open(dial, cfg)
	}
	if err != nil {
		return nil, "", fmt.Errorf("init db: open %s: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, "", fmt.Errorf("init db: %w", err)
	}
	version, err := Migrate(ctx, sqlDB, dialect)
	if err != nil {
		_ = sqlDB.Close()
		return nil, "", fmt.Errorf("init db: %w", err)
	}
	if dialect == DialectSQLite {
		if err := ensureFilePermissions(dsn); err != nil {
			_ = sqlDB.Close()
			return nil, "", err
		}
	}
	log.Debugw("database ready", "dialect", dialect, "schema_version", version)
	return db, dialect, nil
}

// sqliteDSN собирает DSN modernc с прагмами из пути к файлу.
func sqliteDSN(path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}

// ensureFilePermissions оставляет доступ к файлу БД и WAL только владельцу.
func ensureFilePermissions(path string) error {
	for _, p := range []string{path, path + "-wal"} {
		if err := os.Chmod(p, 0o600); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("set db file permissions: %w", err)
		}
	}
	return nil
}
