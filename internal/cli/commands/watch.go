package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"VaultKeeper/internal/cli/bootstrap"
	"VaultKeeper/internal/config"
)

type watchCmd struct{}

func (watchCmd) Name() string { return "watch" }
func (watchCmd) Description() string {
	return "Следить за ключами типа аккаунта до прерывания (-n: число снимков)"
}
func (watchCmd) Usage() string { return "watch [-n <count>] <user> <type>" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	count := fs.Int("n", 0, "stop after this many snapshots (0 = until interrupted)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 2 || *count < 0 {
		return ErrUsage
	}
	return withVault(ctx, cfg, func(v *bootstrap.Vault) error {
		at, err := findAccountType(ctx, v, rest[0], rest[1])
		if err != nil {
			return err
		}
		stream := v.Service.ObserveEntries(ctx, at.ID)
		defer stream.Close()

		seen := 0
		for entries := range stream.Updates() {
			seen++
			fmt.Fprintf(Out, "--- %s/%s: %d\n", rest[0], at.Name, len(entries))
			for _, e := range entries {
				fmt.Fprintf(Out, "- %s\n", e.Key)
			}
			if *count > 0 && seen >= *count {
				return nil
			}
		}
		if err := stream.Err(); err != nil {
			return err
		}
		return nil
	})
}

func init() { RegisterCmd(watchCmd{}) }
