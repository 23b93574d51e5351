package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
)

type entriesCmd struct{}

func (entriesCmd) Name() string        { return "entries" }
func (entriesCmd) Description() string { return "Показать ключи типа аккаунта (--values: со значениями)" }
func (entriesCmd) Usage() string       { return "entries [--values] <user> <type>" }

func (entriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("entries", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	showValues := fs.Bool("values", false, "печатать значения")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 2 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		at, err := findAccountType(ctx, v, rest[0], rest[1])
		if err != nil {
			return err
		}
		list, err := v.Service.ListEntries(ctx, at.ID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(Out, "Нет записей")
			return nil
		}
		for _, e := range list {
			if *showValues {
				fmt.Fprintf(Out, "- %s = %s\n", e.Key, e.Value)
				continue
			}
			fmt.Fprintf(Out, "- %s\n", e.Key)
		}
		fmt.Fprintf(Out, "Всего: %d\n", len(list))
		return nil
	})
}

type entryAddCmd struct{}

func (entryAddCmd) Name() string        { return "entry-add" }
func (entryAddCmd) Description() string { return "Добавить запись ключ/значение" }
func (entryAddCmd) Usage() string       { return "entry-add <user> <type> <key> <value>" }

func (entryAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 4 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		at, err := findAccountType(ctx, v, args[0], args[1])
		if err != nil {
			return err
		}
		e, err := v.Service.AddEntry(ctx, at.ID, args[2], args[3])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Created:")
		fmt.Fprintf(Out, "  id:    %s\n", e.ID)
		fmt.Fprintf(Out, "  key:   %s\n", e.Key)
		fmt.Fprintln(Out, "  value: <set>")
		return nil
	})
}

type entryEditCmd struct{}

func (entryEditCmd) Name() string        { return "entry-edit" }
func (entryEditCmd) Description() string { return "Изменить ключ и значение записи" }
func (entryEditCmd) Usage() string       { return "entry-edit <user> <type> <key> <new-key> <value>" }

func (entryEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 5 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		e, err := findEntry(ctx, v, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		e, err = v.Service.UpdateEntry(ctx, e.ID, args[3], args[4])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, "Updated:")
		fmt.Fprintf(Out, "  id:    %s\n", e.ID)
		fmt.Fprintf(Out, "  key:   %s\n", e.Key)
		fmt.Fprintln(Out, "  value: <set>")
		return nil
	})
}

type entryDeleteCmd struct{}

func (entryDeleteCmd) Name() string        { return "entry-delete" }
func (entryDeleteCmd) Description() string { return "Удалить запись" }
func (entryDeleteCmd) Usage() string       { return "entry-delete <user> <type> <key>" }

func (entryDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		e, err := findEntry(ctx, v, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		if _, err := v.Service.DeleteEntry(ctx, e.ID); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted entry %s\n", e.Key)
		return nil
	})
}

func init() {
	RegisterCmd(entriesCmd{})
	RegisterCmd(entryAddCmd{})
	RegisterCmd(entryEditCmd{})
	RegisterCmd(entryDeleteCmd{})
}
