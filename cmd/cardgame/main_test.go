package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/card-showdown/internal/apperrors"
	"github.com/palemoky/card-showdown/internal/logger"
)

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli, kong.Name("cardgame"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	return parser
}

func TestCLI_Parse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		command string
		check   func(t *testing.T, cli *CLI)
	}{
		{
			name:    "play is default",
			args:    []string{},
			command: "play",
			check: func(t *testing.T, cli *CLI) {
				assert.Equal(t, "configs/config.yaml", cli.Config)
				assert.False(t, cli.Debug)
			},
		},
		{
			name:    "simulate flags",
			args:    []string{"simulate", "-n", "500", "-w", "8", "--seed", "7"},
			command: "simulate",
			check: func(t *testing.T, cli *CLI) {
				assert.Equal(t, 500, cli.Simulate.Rounds)
				assert.Equal(t, 8, cli.Simulate.Workers)
				assert.Equal(t, int64(7), cli.Simulate.Seed)
			},
		},
		{
			name:    "history limit default",
			args:    []string{"history"},
			command: "history",
			check: func(t *testing.T, cli *CLI) {
				assert.Equal(t, 10, cli.History.Limit)
			},
		},
		{
			name:    "history show",
			args:    []string{"history", "--show", "abc"},
			command: "history",
			check: func(t *testing.T, cli *CLI) {
				assert.Equal(t, "abc", cli.History.Show)
			},
		},
		{
			name:    "global flags",
			args:    []string{"--debug", "-c", "other.yaml", "leaderboard", "-l", "3"},
			command: "leaderboard",
			check: func(t *testing.T, cli *CLI) {
				assert.True(t, cli.Debug)
				assert.Equal(t, "other.yaml", cli.Config)
				assert.Equal(t, 3, cli.Leaderboard.Limit)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			ctx, err := newParser(t, &cli).Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.command, ctx.Command())
			tt.check(t, &cli)
		})
	}
}

func TestGlobals_Setup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "storage:\n  backend: sqlite\nlog:\n  dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	g := &Globals{Config: path, Debug: true}
	cfg, err := g.setup()
	require.NoError(t, err)
	t.Cleanup(logger.Close)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "debug.log"), logger.GetLogPath())
}

func TestGlobals_SetupInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  players: [a, b]\n"), 0o644))

	_, err := (&Globals{Config: path}).setup()
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
