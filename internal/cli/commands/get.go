package commands

import (
	"context"
	"fmt"
	"time"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/search"
)

// resolveTimeout ограничивает ожидание первого снимка от хранилища.
const resolveTimeout = 5 * time.Second

type getCmd struct{}

func (getCmd) Name() string        { return "get" }
func (getCmd) Description() string { return "Показать значение по пути пользователь/тип/ключ" }
func (getCmd) Usage() string       { return "get <user> <type> <key>" }

func (getCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		at, err := findAccountType(ctx, v, args[0], args[1])
		if err != nil {
			return err
		}

		r := search.NewResolver(ctx, v.Service, v.Log)
		defer r.Close()
		r.SelectUser(at.UserID)
		r.SelectAccountType(at.ID)
		r.SelectKey(args[2])

		waitCtx, cancel := context.WithTimeout(ctx, resolveTimeout)
		defer cancel()
		st, err := r.Await(waitCtx)
		if err != nil {
			return fmt.Errorf("resolve value: %w", err)
		}
		if st.Value == "" {
			return fmt.Errorf("ключ %q в %s/%s не найден", args[2], args[0], at.Name)
		}
		fmt.Fprintln(Out, st.Value)
		return nil
	})
}

func init() { RegisterCmd(getCmd{}) }
