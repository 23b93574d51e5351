package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"VaultKeeper/internal/config"
)

// withTempConfig возвращает конфиг с хранилищем во временном каталоге.
func withTempConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ClientDBPath: filepath.Join(dir, "vault.db"),
		LogLevel:     "error",
	}
}

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// run выполняет команду через диспетчер и возвращает код выхода и вывод.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
	return code, out
}

// mustRun выполняет run и ждёт успешного завершения.
func mustRun(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	code, out := run(t, cfg, args...)
	if code != 0 {
		t.Fatalf("%v: exit %d, output:\n%s", args, code, out)
	}
	return out
}
