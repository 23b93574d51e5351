package commands

import (
	"context"
	"fmt"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/repo"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать расположение хранилища и число записей" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		st, err := v.Store.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Store:         %s\n", v.Store.Dialect())
		if v.Store.Dialect() == repo.DialectSQLite {
			fmt.Fprintf(Out, "Path:          %s\n", v.DSN)
		}
		fmt.Fprintf(Out, "Users:         %d\n", st.Users)
		fmt.Fprintf(Out, "Account types: %d\n", st.AccountTypes)
		fmt.Fprintf(Out, "Entries:       %d\n", st.Entries)
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
