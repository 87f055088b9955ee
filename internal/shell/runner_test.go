// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package shell_test

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/aibor/qemu-resources/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()

	_, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
}

func TestExec_Run(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name           string
		cmd            shell.Command
		expectedStdout string
		expectedStderr string
		expectedCode   int
		expectedErr    error
	}{
		{
			name:           "output",
			cmd:            shell.New("sh", "-c", "echo out; echo err >&2"),
			expectedStdout: "out\n",
			expectedStderr: "err\n",
		},
		{
			name:           "env",
			cmd:            shell.New("sh", "-c", `echo "$LDFLAGS"`).WithEnv("LDFLAGS", "-s"),
			expectedStdout: "-s\n",
		},
		{
			name:           "dir",
			cmd:            shell.New("sh", "-c", "pwd").InDir("/"),
			expectedStdout: "/\n",
		},
		{
			name:         "exit code",
			cmd:          shell.New("sh", "-c", "exit 3"),
			expectedCode: 3,
			expectedErr:  &shell.CommandError{},
		},
		{
			name:         "not found",
			cmd:          shell.New("/nonexistent/command"),
			expectedCode: -1,
			expectedErr:  &shell.CommandError{},
		},
		{
			name:        "empty",
			cmd:         shell.Command{},
			expectedErr: shell.ErrEmptyCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			runner := &shell.Exec{Stdout: &stdout, Stderr: &stderr}

			err := runner.Run(context.Background(), tt.cmd)
			require.ErrorIs(t, err, tt.expectedErr)

			if tt.expectedCode != 0 {
				var cmdErr *shell.CommandError
				require.ErrorAs(t, err, &cmdErr)
				assert.Equal(t, tt.expectedCode, cmdErr.ExitCode)
			}

			assert.Equal(t, tt.expectedStdout, stdout.String())
			assert.Equal(t, tt.expectedStderr, stderr.String())
		})
	}
}

func TestExec_RunLogged(t *testing.T) {
	requireShell(t)

	runner := &shell.Exec{}

	err := runner.Run(context.Background(), shell.New("sh", "-c", "echo out; echo err >&2"))
	require.NoError(t, err)
}

func TestExec_Output(t *testing.T) {
	requireShell(t)

	runner := &shell.Exec{}

	out, err := runner.Output(context.Background(), shell.New("sh", "-c", "echo '  /opt/homebrew  '"))
	require.NoError(t, err)
	assert.Equal(t, "/opt/homebrew", out)

	_, err = runner.Output(context.Background(), shell.New("sh", "-c", "echo fail >&2; exit 2"))

	var cmdErr *shell.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 2, cmdErr.ExitCode)
	assert.Equal(t, "sh", cmdErr.Name)
}

func TestExec_Canceled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &shell.Exec{}

	err := runner.Run(ctx, shell.New("sh", "-c", "sleep 10"))
	require.ErrorIs(t, err, &shell.CommandError{})
}
