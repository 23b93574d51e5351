package commands

import (
	"context"
	"errors"
	"fmt"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
)

// withVault открывает хранилище на время выполнения fn.
func withVault(ctx context.Context, cfg *config.Config, fn func(v *bootstrap.Vault) error) error {
	v, done, err := bootstrap.OpenVault(ctx, cfg)
	if err != nil {
		return err
	}
	defer done()
	return fn(v)
}

// findUser ищет пользователя по имени без учёта регистра.
func findUser(ctx context.Context, v *bootstrap.Vault, name string) (*model.User, error) {
	u, err := v.Service.FindUserByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("пользователь %q не найден", name)
	}
	return u, err
}

// findAccountType ищет тип аккаунта по имени пользователя и имени типа.
func findAccountType(ctx context.Context, v *bootstrap.Vault, userName, typeName string) (*model.AccountType, error) {
	u, err := findUser(ctx, v, userName)
	if err != nil {
		return nil, err
	}
	at, err := v.Service.FindAccountTypeByName(ctx, u.ID, typeName)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("тип аккаунта %q у пользователя %q не найден", typeName, u.Name)
	}
	return at, err
}

// findEntry ищет запись по пути пользователь/тип/ключ.
func findEntry(ctx context.Context, v *bootstrap.Vault, userName, typeName, key string) (*model.Entry, error) {
	at, err := findAccountType(ctx, v, userName, typeName)
	if err != nil {
		return nil, err
	}
	e, err := v.Service.FindEntryByKey(ctx, at.ID, key)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("ключ %q в %s/%s не найден", key, userName, at.Name)
	}
	return e, err
}

// printCascade выводит, что было удалено вместе с записью.
func printCascade(c repo.Cascade) {
	if len(c.AccountTypes) > 0 {
		fmt.Fprintf(Out, "  типов аккаунтов удалено: %d\n", len(c.AccountTypes))
	}
	if len(c.Entries) > 0 {
		fmt.Fprintf(Out, "  записей удалено: %d\n", len(c.Entries))
	}
}
