package executor

import (
	"bytes"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/runoshun/nh/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shell(script string) *domain.ExecCommand {
	return domain.NewExecCommand("sh", []string{"-c", script}, "")
}

func newTestClient() (*Client, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return NewClientWithIO(nil, &stdout, &stderr), &stdout, &stderr
}

func TestClient_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	t.Run("inherits stdout and stderr", func(t *testing.T) {
		client, stdout, stderr := newTestClient()
		status, err := client.Run(shell("echo hello; echo oops >&2"))
		require.NoError(t, err)
		assert.True(t, status.Success())
		assert.Equal(t, "hello\n", stdout.String())
		assert.Equal(t, "oops\n", stderr.String())
	})

	t.Run("merges stderr into stdout", func(t *testing.T) {
		client, stdout, stderr := newTestClient()
		cmd := shell("echo out; echo err >&2")
		cmd.Stderr = domain.RedirectMerge
		_, err := client.Run(cmd)
		require.NoError(t, err)
		assert.Equal(t, "out\nerr\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("discards streams", func(t *testing.T) {
		client, stdout, stderr := newTestClient()
		cmd := shell("echo out; echo err >&2")
		cmd.Stdout = domain.RedirectNull
		cmd.Stderr = domain.RedirectNull
		_, err := client.Run(cmd)
		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("non-zero exit is a status, not an error", func(t *testing.T) {
		client, _, _ := newTestClient()
		status, err := client.Run(shell("exit 3"))
		require.NoError(t, err)
		assert.False(t, status.Success())
		assert.Equal(t, 3, status.Code)
		assert.Empty(t, status.Signal)
	})

	t.Run("signal termination", func(t *testing.T) {
		client, _, _ := newTestClient()
		status, err := client.Run(shell("kill -9 $$"))
		require.NoError(t, err)
		assert.False(t, status.Success())
		assert.Equal(t, "killed", status.Signal)
	})

	t.Run("runs in directory", func(t *testing.T) {
		client, stdout, _ := newTestClient()
		dir := t.TempDir()
		cmd := shell("pwd")
		cmd.Dir = dir
		_, err := client.Run(cmd)
		require.NoError(t, err)
		assert.Contains(t, strings.TrimSpace(stdout.String()), dir)
	})

	t.Run("missing program is a spawn error", func(t *testing.T) {
		client, _, _ := newTestClient()
		_, err := client.Run(domain.NewExecCommand("nonexistent-command-xyz", nil, ""))
		require.Error(t, err)

		var spawnErr *domain.SpawnError
		require.True(t, errors.As(err, &spawnErr))
		assert.Equal(t, "start", spawnErr.Op)
		assert.True(t, spawnErr.NotFound())
	})
}

func TestClient_Capture(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	t.Run("returns stdout only", func(t *testing.T) {
		client, stdout, stderr := newTestClient()
		cmd := shell("printf 'fixed output'; echo noise >&2")
		cmd.Stderr = domain.RedirectNull
		out, status, err := client.Capture(cmd)
		require.NoError(t, err)
		assert.True(t, status.Success())
		assert.Equal(t, "fixed output", string(out))
		assert.Empty(t, stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("reports exit status", func(t *testing.T) {
		client, _, _ := newTestClient()
		out, status, err := client.Capture(shell("echo partial; exit 2"))
		require.NoError(t, err)
		assert.Equal(t, 2, status.Code)
		assert.Equal(t, "partial\n", string(out))
	})

	t.Run("missing program", func(t *testing.T) {
		client, _, _ := newTestClient()
		_, _, err := client.Capture(domain.NewExecCommand("nonexistent-command-xyz", nil, ""))
		var spawnErr *domain.SpawnError
		assert.True(t, errors.As(err, &spawnErr))
	})
}

func TestClient_Pipeline(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	t.Run("consumer receives all producer output including merged stderr", func(t *testing.T) {
		client, stdout, stderr := newTestClient()
		producer := shell("for i in 1 2 3 4 5; do echo line $i; done; echo warning >&2")
		producer.Stderr = domain.RedirectMerge
		consumer := shell("wc -l | tr -d ' '")

		statuses, err := client.Pipeline(producer, consumer)
		require.NoError(t, err)
		require.Len(t, statuses, 2)
		assert.True(t, statuses[0].Success())
		assert.True(t, statuses[1].Success())
		assert.Equal(t, "6\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("output larger than the pipe buffer", func(t *testing.T) {
		client, stdout, _ := newTestClient()
		statuses, err := client.Pipeline(
			shell("i=0; while [ $i -lt 50000 ]; do echo $i; i=$((i+1)); done"),
			shell("wc -l | tr -d ' '"),
		)
		require.NoError(t, err)
		assert.True(t, statuses[0].Success())
		assert.Equal(t, "50000\n", stdout.String())
	})

	t.Run("each stage keeps its own status", func(t *testing.T) {
		client, stdout, _ := newTestClient()
		statuses, err := client.Pipeline(shell("echo a; exit 4"), shell("cat"))
		require.NoError(t, err)
		assert.Equal(t, 4, statuses[0].Code)
		assert.True(t, statuses[1].Success())
		assert.Equal(t, "a\n", stdout.String())
	})

	t.Run("three stages", func(t *testing.T) {
		client, stdout, _ := newTestClient()
		statuses, err := client.Pipeline(shell("printf 'b\\na\\nc\\n'"), shell("sort"), shell("head -n 1"))
		require.NoError(t, err)
		require.Len(t, statuses, 3)
		assert.Equal(t, "a\n", stdout.String())
	})

	t.Run("consumer that cannot start", func(t *testing.T) {
		client, _, _ := newTestClient()
		statuses, err := client.Pipeline(shell("echo a"), domain.NewExecCommand("nonexistent-command-xyz", nil, ""))
		require.Error(t, err)
		require.Len(t, statuses, 2)

		var spawnErr *domain.SpawnError
		require.True(t, errors.As(err, &spawnErr))
		assert.Equal(t, "nonexistent-command-xyz", spawnErr.Program)
	})

	t.Run("no stages", func(t *testing.T) {
		client, _, _ := newTestClient()
		_, err := client.Pipeline()
		assert.ErrorIs(t, err, domain.ErrEmptyPipeline)
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient()
	assert.NotNil(t, client)
}
