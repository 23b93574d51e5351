package commands

import (
	"context"
	"fmt"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
)

type typesCmd struct{}

func (typesCmd) Name() string        { return "types" }
func (typesCmd) Description() string { return "Показать типы аккаунтов пользователя" }
func (typesCmd) Usage() string       { return "types <user>" }

func (typesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		u, err := findUser(ctx, v, args[0])
		if err != nil {
			return err
		}
		list, err := v.Service.ListAccountTypes(ctx, u.ID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintf(Out, "У пользователя %s нет типов аккаунтов\n", u.Name)
			return nil
		}
		for _, at := range list {
			fmt.Fprintf(Out, "- %s  id=%s\n", at.Name, at.ID)
		}
		fmt.Fprintf(Out, "Всего: %d\n", len(list))
		return nil
	})
}

type typeAddCmd struct{}

func (typeAddCmd) Name() string        { return "type-add" }
func (typeAddCmd) Description() string { return "Добавить тип аккаунта пользователю" }
func (typeAddCmd) Usage() string       { return "type-add <user> <name>" }

func (typeAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		u, err := findUser(ctx, v, args[0])
		if err != nil {
			return err
		}
		at, err := v.Service.AddAccountType(ctx, u.ID, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:   %s\n", at.ID)
		fmt.Fprintf(Out, "  user: %s\n", u.Name)
		fmt.Fprintf(Out, "  name: %s\n", at.Name)
		return nil
	})
}

type typeRenameCmd struct{}

func (typeRenameCmd) Name() string        { return "type-rename" }
func (typeRenameCmd) Description() string { return "Переименовать тип аккаунта" }
func (typeRenameCmd) Usage() string       { return "type-rename <user> <name> <new-name>" }

func (typeRenameCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		at, err := findAccountType(ctx, v, args[0], args[1])
		if err != nil {
			return err
		}
		at, err = v.Service.UpdateAccountType(ctx, at.ID, args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Updated:")
		fmt.Fprintf(Out, "  id:   %s\n", at.ID)
		fmt.Fprintf(Out, "  name: %s\n", at.Name)
		return nil
	})
}

type typeDeleteCmd struct{}

func (typeDeleteCmd) Name() string        { return "type-delete" }
func (typeDeleteCmd) Description() string { return "Удалить тип аккаунта вместе с записями" }
func (typeDeleteCmd) Usage() string       { return "type-delete <user> <name>" }

func (typeDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		at, err := findAccountType(ctx, v, args[0], args[1])
		if err != nil {
			return err
		}
		c, err := v.Service.DeleteAccountType(ctx, at.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted account type %s\n", at.Name)
		printCascade(c)
		return nil
	})
}

func init() {
	RegisterCmd(typesCmd{})
	RegisterCmd(typeAddCmd{})
	RegisterCmd(typeRenameCmd{})
	RegisterCmd(typeDeleteCmd{})
}
