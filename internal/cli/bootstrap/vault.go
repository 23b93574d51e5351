package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"VaultKeeper/internal/config"
	"VaultKeeper/internal/logger"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/service"

	"go.uber.org/zap"
)

// Vault держит открытое хранилище для одной команды CLI.
type Vault struct {
	Service *service.VaultService
	Store   *repo.Store
	Log     *zap.SugaredLogger
	DSN     string
}

// OpenVault собирает логгер, открывает хранилище (с миграциями) и сервис поверх него.
// Возвращает (vault, cleanup, error); cleanup нужно вызвать по окончании работы,
// чтобы закрыть потоки, соединение с БД и файл лога. Повторный вызов cleanup безопасен.
func OpenVault(ctx context.Context, cfg *config.Config) (*Vault, func() error, error) {
	log, syncLog, err := logger.New(logger.Options{
		Level:     cfg.LogLevel,
		File:      cfg.LogFile,
		MaxSizeMB: cfg.LogMaxSizeMB,
		MaxFiles:  cfg.LogMaxFiles,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	dsn := cfg.StoreDSN()
	if dsn == "" {
		syncLog()
		return nil, nil, errors.New("не задан путь к хранилищу: укажите VAULT_DB_PATH или DATABASE_URI")
	}
	store, err := repo.Open(ctx, dsn, log)
	if err != nil {
		log.Errorw("failed to open store", "dialect", repo.DetectDialect(dsn), "error", err)
		syncLog()
		return nil, nil, fmt.Errorf("open vault: %w", err)
	}
	svc := service.NewVaultServiceFromStore(store, log)
	log.Infow("vault opened", "dialect", store.Dialect())

	closed := false
	cleanup := func() error {
		if closed {
			return nil
		}
		closed = true
		svc.Close()
		err := store.Close()
		syncLog()
		return err
	}
	return &Vault{Service: svc, Store: store, Log: log, DSN: dsn}, cleanup, nil
}
