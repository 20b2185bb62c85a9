package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depvet/depvet/cmd/depvet/commands"
	"github.com/depvet/depvet/internal/app"
	"github.com/depvet/depvet/internal/build"
	"github.com/depvet/depvet/internal/core/domain"
)

type mockApp struct {
	optimizeFunc func(ctx context.Context, opts app.OptimizeOptions) (*app.OptimizeResult, error)
	scanFunc     func(out io.Writer, dir, agentName string) error
	detectFunc   func(dir string) (domain.Agent, error)
}

func (m *mockApp) Optimize(ctx context.Context, opts app.OptimizeOptions) (*app.OptimizeResult, error) {
	if m.optimizeFunc != nil {
		return m.optimizeFunc(ctx, opts)
	}
	return &app.OptimizeResult{Agent: domain.AgentNPM, State: domain.NewResolutionState()}, nil
}

func (m *mockApp) ScanManifest(out io.Writer, dir, agentName string) error {
	if m.scanFunc != nil {
		return m.scanFunc(out, dir, agentName)
	}
	return nil
}

func (m *mockApp) DetectAgent(dir string) (domain.Agent, error) {
	if m.detectFunc != nil {
		return m.detectFunc(dir)
	}
	return domain.AgentNPM, nil
}

func (m *mockApp) WriteSummary(out io.Writer, _ *app.OptimizeResult) {
	_, _ = io.WriteString(out, "summary\n")
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetArgs(args)
	cli.SetOutput(out, new(bytes.Buffer))
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Optimize(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.OptimizeOptions
		mock := &mockApp{
			optimizeFunc: func(_ context.Context, opts app.OptimizeOptions) (*app.OptimizeResult, error) {
				captured = opts
				return &app.OptimizeResult{Agent: domain.AgentPnpm, State: domain.NewResolutionState()}, nil
			},
		}

		out, err := execute(t, mock,
			"optimize", "./project", "--agent", "pnpm", "--pin", "--prod", "--catalog", "rows.json")
		require.NoError(t, err)

		assert.Equal(t, "./project", captured.Dir)
		assert.Equal(t, "pnpm", captured.Agent)
		assert.True(t, captured.Pin)
		assert.True(t, captured.ProdOnly)
		assert.Equal(t, "rows.json", captured.CatalogPath)
		assert.Contains(t, out, "summary")
	})

	t.Run("defaults to current directory", func(t *testing.T) {
		var captured app.OptimizeOptions
		mock := &mockApp{
			optimizeFunc: func(_ context.Context, opts app.OptimizeOptions) (*app.OptimizeResult, error) {
				captured = opts
				return &app.OptimizeResult{Agent: domain.AgentNPM, State: domain.NewResolutionState()}, nil
			},
		}

		_, err := execute(t, mock, "optimize")
		require.NoError(t, err)
		assert.Empty(t, captured.Dir)
	})

	t.Run("propagates failures", func(t *testing.T) {
		mock := &mockApp{
			optimizeFunc: func(_ context.Context, _ app.OptimizeOptions) (*app.OptimizeResult, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "optimize")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Manifest(t *testing.T) {
	mock := &mockApp{
		scanFunc: func(out io.Writer, dir, agentName string) error {
			assert.Equal(t, "./project", dir)
			assert.Equal(t, "yarn-berry", agentName)
			_, _ = io.WriteString(out, `{"mock":"manifest"}`)
			return nil
		},
	}

	out, err := execute(t, mock, "manifest", "./project", "--agent", "yarn-berry")
	require.NoError(t, err)
	assert.Contains(t, out, `{"mock":"manifest"}`)
}

func TestCommands_Agent(t *testing.T) {
	mock := &mockApp{
		detectFunc: func(dir string) (domain.Agent, error) {
			assert.Equal(t, "./project", dir)
			return domain.AgentVlt, nil
		},
	}

	out, err := execute(t, mock, "agent", "./project")
	require.NoError(t, err)
	assert.Equal(t, "vlt\n", out)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "depvet version "+build.Version)
}
