package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "peano", cmd.Use)
	assert.Contains(t, cmd.Long, "Peano axioms")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"eval", "repl", "set", "table", "test", "replay", "runs", "version"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	traceFlag := cmd.PersistentFlags().Lookup("trace-level")
	require.NotNil(t, traceFlag)
	assert.Equal(t, "off", traceFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		command string
		flags   []string
	}{
		{"eval", []string{"db", "max-evaluations"}},
		{"repl", []string{"db", "max-evaluations"}},
		{"set", []string{"limit"}},
		{"table", []string{"modulo", "op"}},
		{"test", []string{"update", "golden", "filter"}},
		{"replay", []string{"db"}},
		{"runs", []string{"db", "failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			cmd := NewRootCommand()
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)
			for _, name := range tt.flags {
				assert.NotNil(t, sub.Flags().Lookup(name), "flag --%s", name)
			}
		})
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	_, _, err := execute(t, "--format", "invalid", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTraceLevelValidation(t *testing.T) {
	_, _, err := execute(t, "--trace-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --trace-level")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peano.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	out, _, err := execute(t, "--config", path, "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)

	// An explicit flag wins over the file.
	out, _, err = execute(t, "--config", path, "--format", "text", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "peano ")
	assert.NotContains(t, out, `"status"`)
}

func TestConfigFileMissing(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "version")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEnvironmentConfig(t *testing.T) {
	t.Setenv("PEANO_FORMAT", "json")

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"engine"`)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "peano 0.1.0 (ir 1)\n", out)
}
