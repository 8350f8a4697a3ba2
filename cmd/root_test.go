package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/aliasimkazmi/core-components/pkg/widgets"
)

// resetRootCmdState restores all root command flags to their defaults so
// tests don't leak flag state into each other.
func resetRootCmdState() {
	rootCmd.SetArgs(nil)
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
}

func TestTerminalDeviceNames(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in  string
		out string
	}{
		"windows": {in: "CONIN$", out: "CONOUT$"},
		"linux":   {in: "/dev/tty", out: "/dev/tty"},
		"darwin":  {in: "/dev/tty", out: "/dev/tty"},
		"freebsd": {in: "/dev/tty", out: "/dev/tty"},
	}

	for goos, expected := range tests {
		goos := goos
		expected := expected
		t.Run(goos, func(t *testing.T) {
			t.Parallel()

			in, out := terminalDeviceNames(goos)
			require.Equal(t, expected.in, in)
			require.Equal(t, expected.out, out)
		})
	}
}

func TestGetProgramOptions_PipedUsesTTYAndCleansUp(t *testing.T) {
	origIsPiped := stdinIsPiped
	origOpenTTY := openTerminalIOFn
	stdinIsPiped = func() bool { return true }

	inFile, err := os.CreateTemp(t.TempDir(), "tty-in-*")
	require.NoError(t, err)
	outFile, err := os.CreateTemp(t.TempDir(), "tty-out-*")
	require.NoError(t, err)

	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return inFile, outFile, nil
	}

	defer func() {
		stdinIsPiped = origIsPiped
		openTerminalIOFn = origOpenTTY
	}()

	opts, cleanup := getProgramOptions()
	require.NotNil(t, cleanup)
	require.GreaterOrEqual(t, len(opts), 1)

	// Cleanup should close both handles; second close should error
	cleanup()
	require.Error(t, inFile.Close())
	require.Error(t, outFile.Close())
}

func TestGetProgramOptions_NotPipedUsesDefaults(t *testing.T) {
	origIsPiped := stdinIsPiped
	origOpenTTY := openTerminalIOFn
	stdinIsPiped = func() bool { return false }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("should not be called")
	}
	defer func() {
		stdinIsPiped = origIsPiped
		openTerminalIOFn = origOpenTTY
	}()

	opts, cleanup := getProgramOptions()
	require.NotNil(t, cleanup)
	require.Nil(t, opts)

	require.NotPanics(t, cleanup)
}

func TestGetProgramOptions_PipedWithoutTTYFallsBack(t *testing.T) {
	origIsPiped := stdinIsPiped
	origOpenTTY := openTerminalIOFn
	stdinIsPiped = func() bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) {
		return nil, nil, fmt.Errorf("no tty")
	}
	defer func() {
		stdinIsPiped = origIsPiped
		openTerminalIOFn = origOpenTTY
	}()

	opts, cleanup := getProgramOptions()
	require.Nil(t, opts)
	require.NotPanics(t, cleanup)
}

func TestResolveConfigPathExplicitWins(t *testing.T) {
	require.Equal(t, "explicit.yaml", resolveConfigPath("explicit.yaml"))
}

func TestResolveConfigPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No file present: empty result.
	require.Empty(t, resolveConfigPath(""))

	cfgDir := filepath.Join(dir, "pick")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui:\n  theme: dark\n"), 0o600))

	require.Equal(t, cfgPath, resolveConfigPath(""))
}

func TestLoadCandidatesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fruits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- apple\n- label: Banana\n  value: ba\n"), 0o600))

	cands, err := loadCandidates([]string{path})
	require.NoError(t, err)
	require.Len(t, cands, 2)
	require.Equal(t, "apple", cands[0].SelectValue())
	require.Equal(t, "ba", cands[1].SelectValue())
}

func TestLoadCandidatesMissingFile(t *testing.T) {
	_, err := loadCandidates([]string{filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read file")
}

func TestLoadCandidatesRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := loadCandidates([]string{path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse input")
}

func stubPicker(t *testing.T, res widgets.Result, err error) *widgets.Config {
	t.Helper()
	resetRootCmdState()
	// Isolate from user config by pointing XDG_CONFIG_HOME to a temp dir.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origRun := runPicker
	origPiped := stdinIsPiped
	origConfigFile := configFile
	var got widgets.Config
	runPicker = func(cfg widgets.Config, _ ...tea.ProgramOption) (widgets.Result, error) {
		got = cfg
		return res, err
	}
	stdinIsPiped = func() bool { return false }
	t.Cleanup(func() {
		runPicker = origRun
		stdinIsPiped = origPiped
		configFile = origConfigFile
	})
	return &got
}

func writeFruitsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fruits.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- apple\n- banana\n"), 0o600))
	return path
}

func TestRunPrintsSelectionValue(t *testing.T) {
	got := stubPicker(t, widgets.Result{Candidate: widgets.Candidate{Label: "apple"}}, nil)
	path := writeFruitsFile(t)

	var sb strings.Builder
	rootCmd.SetOut(&sb)
	defer rootCmd.SetOut(nil)

	require.NoError(t, run(rootCmd, []string{path}))
	require.Equal(t, "apple\n", sb.String())
	require.Len(t, got.Candidates, 2)
}

func TestRunCancelMapsToErrCanceled(t *testing.T) {
	stubPicker(t, widgets.Result{Canceled: true}, nil)
	path := writeFruitsFile(t)

	err := run(rootCmd, []string{path})
	require.ErrorIs(t, err, errCanceled)
}

func TestRunWithoutInputShowsHelp(t *testing.T) {
	stubPicker(t, widgets.Result{}, nil)

	err := run(rootCmd, nil)
	require.ErrorIs(t, err, errShowHelp)
}

func TestCLIVersionString(t *testing.T) {
	v := cliVersionString()
	require.True(t, strings.HasPrefix(v, "pick "), "version string should start with the binary name: %s", v)
	require.Contains(t, v, "go")
}

func TestVersionCommandPrintsVersion(t *testing.T) {
	var sb strings.Builder
	versionCmd.SetOut(&sb)
	defer versionCmd.SetOut(nil)

	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	require.Contains(t, sb.String(), "pick ")
}
