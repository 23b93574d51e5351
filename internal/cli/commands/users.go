package commands

import (
	"context"
	"fmt"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
)

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "Показать всех пользователей" }
func (usersCmd) Usage() string       { return "users" }

func (usersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		list, err := v.Service.ListUsers(ctx)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Нет пользователей")
			return nil
		}
		for _, u := range list {
			fmt.Fprintf(Out, "- %s  id=%s\n", u.Name, u.ID)
		}
		fmt.Fprintf(Out, "Всего: %d\n", len(list))
		return nil
	})
}

type userAddCmd struct{}

func (userAddCmd) Name() string        { return "user-add" }
func (userAddCmd) Description() string { return "Добавить пользователя" }
func (userAddCmd) Usage() string       { return "user-add <name>" }

func (userAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		u, err := v.Service.AddUser(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:   %s\n", u.ID)
		fmt.Fprintf(Out, "  name: %s\n", u.Name)
		return nil
	})
}

type userRenameCmd struct{}

func (userRenameCmd) Name() string        { return "user-rename" }
func (userRenameCmd) Description() string { return "Переименовать пользователя" }
func (userRenameCmd) Usage() string       { return "user-rename <name> <new-name>" }

func (userRenameCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		u, err := findUser(ctx, v, args[0])
		if err != nil {
			return err
		}
		u, err = v.Service.UpdateUser(ctx, u.ID, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Updated:")
		fmt.Fprintf(Out, "  id:   %s\n", u.ID)
		fmt.Fprintf(Out, "  name: %s\n", u.Name)
		return nil
	})
}

type userDeleteCmd struct{}

func (userDeleteCmd) Name() string { return "user-delete" }
func (userDeleteCmd) Description() string {
	return "Удалить пользователя вместе с типами аккаунтов и записями"
}
func (userDeleteCmd) Usage() string { return "user-delete <name>" }

func (userDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		u, err := findUser(ctx, v, args[0])
		if err != nil {
			return err
		}
		c, err := v.Service.DeleteUser(ctx, u.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted user %s\n", u.Name)
		printCascade(c)
		return nil
	})
}

func init() {
	RegisterCmd(usersCmd{})
	RegisterCmd(userAddCmd{})
	RegisterCmd(userRenameCmd{})
	RegisterCmd(userDeleteCmd{})
}
