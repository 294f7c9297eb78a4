package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/haul/cmd/haul/commands"
	"go.trai.ch/haul/internal/adapters/logger"
	"go.trai.ch/haul/internal/app"
	"go.trai.ch/haul/internal/build"
	"go.trai.ch/haul/internal/core/domain"
)

type call struct {
	name string
	args []any
}

type mockApp struct {
	calls []call
	err   error
}

func (m *mockApp) record(name string, args ...any) error {
	m.calls = append(m.calls, call{name: name, args: args})
	return m.err
}

func (m *mockApp) Fetch(_ context.Context, opts app.FetchOptions) error {
	return m.record("fetch", opts)
}

func (m *mockApp) Update(_ context.Context, specs []string, opts app.UpdateOptions) error {
	return m.record("update", specs, opts)
}

func (m *mockApp) Remove(_ context.Context, names []string, save, saveDev bool) error {
	return m.record("remove", names, save, saveDev)
}

func (m *mockApp) Stash(_ context.Context, label string) error {
	return m.record("stash", label)
}

func (m *mockApp) Export(_ context.Context, spec, outDir, environment string) error {
	return m.record("export", spec, outDir, environment)
}

func (m *mockApp) Status(_ context.Context, environment, output string) error {
	return m.record("status", environment, output)
}

func (m *mockApp) Verify(_ context.Context, environment string) error {
	return m.record("verify", environment)
}

func (m *mockApp) Init(_ context.Context, force bool) error {
	return m.record("init", force)
}

func (m *mockApp) Configure(_ context.Context, yes bool) error {
	return m.record("configure", yes)
}

func newTestCLI(m *mockApp) *commands.CLI {
	log := logger.New()
	log.SetOutput(io.Discard)

	cli := commands.New(m, log)
	cli.SetOutput(io.Discard, io.Discard)
	return cli
}

func TestCommands_Fetch(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"fetch", "--core", "--env", "alpine"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, mock.calls, 1)
		assert.Equal(t, "fetch", mock.calls[0].name)
		assert.Equal(t, app.FetchOptions{CoreOnly: true, Environment: "alpine"}, mock.calls[0].args[0])
	})

	t.Run("defaults to the global environment", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"fetch"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, mock.calls, 1)
		assert.Equal(t, app.FetchOptions{Environment: domain.GlobalEnvironment}, mock.calls[0].args[0])
	})

	t.Run("returns app errors", func(t *testing.T) {
		mock := &mockApp{err: errors.New("simulated error")}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"fetch"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Update(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"update", "libcore=2", "libwidget", "-S", "--env", "alpine"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, mock.calls, 1)
		assert.Equal(t, "update", mock.calls[0].name)
		assert.Equal(t, []string{"libcore=2", "libwidget"}, mock.calls[0].args[0])
		assert.Equal(t, app.UpdateOptions{Save: true, Environment: "alpine"}, mock.calls[0].args[1])
	})

	t.Run("save-dev shorthand", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"update", "libcore", "-D"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, mock.calls, 1)
		assert.Equal(t, app.UpdateOptions{SaveDev: true, Environment: domain.GlobalEnvironment}, mock.calls[0].args[1])
	})

	t.Run("requires at least one component", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"update"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Empty(t, mock.calls)
	})
}

func TestCommands_Remove(t *testing.T) {
	mock := &mockApp{}
	cli := newTestCLI(mock)
	cli.SetArgs([]string{"remove", "libcore", "-S"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, mock.calls, 1)
	assert.Equal(t, "remove", mock.calls[0].name)
	assert.Equal(t, []string{"libcore"}, mock.calls[0].args[0])
	assert.Equal(t, true, mock.calls[0].args[1])
	assert.Equal(t, false, mock.calls[0].args[2])
}

func TestCommands_Stash(t *testing.T) {
	t.Run("passes the label through", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"stash", "wip"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, mock.calls, 1)
		assert.Equal(t, "stash", mock.calls[0].name)
		assert.Equal(t, "wip", mock.calls[0].args[0])
	})

	t.Run("requires exactly one label", func(t *testing.T) {
		mock := &mockApp{}
		cli := newTestCLI(mock)
		cli.SetArgs([]string{"stash"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Empty(t, mock.calls)
	})
}

func TestCommands_Export(t *testing.T) {
	mock := &mockApp{}
	cli := newTestCLI(mock)
	cli.SetArgs([]string{"export", "libcore=2", "-o", "/tmp/out", "--env", "alpine"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, mock.calls, 1)
	assert.Equal(t, "export", mock.calls[0].name)
	assert.Equal(t, []any{"libcore=2", "/tmp/out", "alpine"}, mock.calls[0].args)
}

func TestCommands_StatusAndVerify(t *testing.T) {
	mock := &mockApp{}
	cli := newTestCLI(mock)
	cli.SetArgs([]string{"status", "--output", "plain"})
	require.NoError(t, cli.Execute(context.Background()))

	cli.SetArgs([]string{"verify", "--env", "alpine"})
	require.NoError(t, cli.Execute(context.Background()))

	require.Len(t, mock.calls, 2)
	assert.Equal(t, call{name: "status", args: []any{domain.GlobalEnvironment, "plain"}}, mock.calls[0])
	assert.Equal(t, call{name: "verify", args: []any{"alpine"}}, mock.calls[1])
}

func TestCommands_InitAndConfigure(t *testing.T) {
	mock := &mockApp{}
	cli := newTestCLI(mock)
	cli.SetArgs([]string{"init", "--force"})
	require.NoError(t, cli.Execute(context.Background()))

	cli.SetArgs([]string{"configure", "-y"})
	require.NoError(t, cli.Execute(context.Background()))

	require.Len(t, mock.calls, 2)
	assert.Equal(t, call{name: "init", args: []any{true}}, mock.calls[0])
	assert.Equal(t, call{name: "configure", args: []any{true}}, mock.calls[1])
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	log := logger.New()
	log.SetOutput(io.Discard)
	cli := commands.New(mock, log)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
