package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	rdebug "runtime/debug"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aliasimkazmi/core-components/pkg/loader"
	"github.com/aliasimkazmi/core-components/pkg/logger"
	"github.com/aliasimkazmi/core-components/pkg/settings"
	"github.com/aliasimkazmi/core-components/pkg/widgets"
)

// errShowHelp is returned by loadCandidates when no input is provided and help should be shown.
var errShowHelp = errors.New("no input provided")

// errCanceled signals that the user quit the picker without selecting.
var errCanceled = errors.New("canceled")

var (
	limitFlag      int
	highlightFlag  string
	ajaxURL        string
	debounceMs     int
	extractExpr    string
	rankMatches    bool
	confirmSelect  bool
	placeholder    string
	themeName      string
	configFile     string
	noColor        bool
	debug          bool
	logLevel       int8
	printLabel     bool
	widgetWidth    int
	widgetHeight   int
)

var rootCtx = context.Background()

// Test seams for terminal plumbing.
var (
	stdinIsPiped     = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	openTerminalIOFn = openTerminalIO
	runPicker        = widgets.Run
	exit             = os.Exit
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: "Interactive fuzzy picker over local or remote candidate lists",
	Long: `pick presents a filter-as-you-type candidate list in the terminal and
prints the selected value to stdout.

Candidates come from a file argument, piped stdin (JSON, NDJSON, YAML, or
TOML), or a remote endpoint polled per keystroke with --ajax.`,
	Example: "\n  pick fruits.yaml\n  cat candidates.json | pick --limit 10\n  pick --ajax 'https://api.example.com/search?q={{value}}' --extract '_.items'\n",
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level := logLevel
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, "command", cmd.Name())

		params := settings.NewCliParams()
		params.MinLogLevel = level
		params.NoColor = noColor

		rootCtx = settings.IntoContext(logger.WithLogger(context.Background(), lgr), params)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(cmd, args); err != nil {
			switch {
			case errors.Is(err, errShowHelp):
				_ = cmd.Help()
				exit(2)
			case errors.Is(err, errCanceled):
				exit(1)
			default:
				fmt.Fprintln(os.Stderr, err)
				exit(2)
			}
		}
	},
}

func run(cmd *cobra.Command, args []string) error {
	lgr := logger.FromContext(rootCtx)

	configFile = resolveConfigPath(configFile)
	merged, err := loadMergedConfig(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlagOverrides(&merged, cmd.Flags().Changed)

	if err := merged.Widget.Validate(); err != nil {
		return err
	}

	// Plain output when stdout is not a terminal, unless the user decided.
	if !cmd.Flags().Changed("no-color") && !merged.UI.NoColor {
		merged.UI.NoColor = !stdoutIsTerminal()
	}

	var cands []widgets.Candidate
	if len(args) > 0 || stdinIsPiped() {
		list, err := loadCandidates(args)
		if err != nil {
			return err
		}
		for _, c := range list {
			cands = append(cands, widgets.Candidate{Label: c.Label, Value: c.Value})
		}
	} else if !merged.Widget.Remote() {
		// No file, no piped stdin, no remote endpoint: nothing to pick from.
		return errShowHelp
	}
	lgr.V(1).Info("candidates loaded", "count", len(cands), "remote", merged.Widget.Remote())

	cfg := widgets.Config{
		Candidates:    cands,
		Limit:         merged.Widget.Limit,
		Highlight:     string(merged.Widget.Highlight),
		AjaxURL:       merged.Widget.AjaxURL,
		DebounceMs:    merged.Widget.DebounceMs,
		ExtractExpr:   merged.Widget.ExtractExpr,
		RankMatches:   merged.Widget.RankMatches,
		Width:         widgetWidth,
		Height:        widgetHeight,
		NoColor:       merged.UI.NoColor,
		ThemeName:     merged.UI.Theme,
		ConfirmSelect: merged.UI.ConfirmSelect,
		Placeholder:   merged.UI.Placeholder,
		BeforeSend: func(url string) bool {
			lgr.V(1).Info("fetching candidates", "url", url)
			return true
		},
	}

	opts, cleanup := getProgramOptions()
	defer cleanup()

	res, err := runPicker(cfg, opts...)
	if err != nil {
		return err
	}
	if res.Canceled {
		return errCanceled
	}

	out := res.Candidate.SelectValue()
	if printLabel {
		out = res.Candidate.Label
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// loadCandidates reads the candidate set from the file argument or stdin.
func loadCandidates(args []string) ([]widgets.Candidate, error) {
	var data []byte
	var err error

	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	}

	list, err := loader.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	out := make([]widgets.Candidate, 0, len(list))
	for _, c := range list {
		out = append(out, widgets.Candidate{Label: c.Label, Value: c.Value})
	}
	return out, nil
}

// resolveConfigPath returns the explicit configFile if set, otherwise the XDG path
// ($XDG_CONFIG_HOME/pick/config.yaml) or ~/.config/pick/config.yaml if present.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	candidate := ""
	if xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// getProgramOptions handles piped stdin by reopening the terminal for interactive
// input/output, so the picker still receives keyboard input when candidates come
// through a pipe. Returns tea.ProgramOption values plus a cleanup.
func getProgramOptions() ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// /dev/tty not available (e.g., in some CI environments).
		// Fall back to piped stdin; the picker degrades to non-interactive.
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut))
	}
	return opts, cleanup
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}

	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}

	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}

	return "/dev/tty", "/dev/tty"
}

// cliVersionString builds a human-readable version string for CLI output.
func cliVersionString() string {
	version := settings.VersionInformation.BuildVersion
	if version == "" || strings.HasSuffix(version, "-dev") {
		if info, ok := rdebug.ReadBuildInfo(); ok {
			if info.Main.Version != "" && info.Main.Version != "(devel)" {
				version = info.Main.Version
			} else {
				for _, s := range info.Settings {
					if s.Key == "vcs.revision" && len(s.Value) >= 7 {
						version = s.Value[:7]
						break
					}
				}
			}
		}
	}
	return fmt.Sprintf("%s %s (go %s)", settings.CliBinaryName, version, runtime.Version())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print pick version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

func init() { //nolint:gochecknoinits
	rootCmd.Flags().IntVar(&limitFlag, "limit", 0, "Limit the number of visible candidates (0 = unlimited)")
	rootCmd.Flags().StringVar(&highlightFlag, "highlight", "", "Match highlighting: off|on|keep (default from config or off)")
	rootCmd.Flags().StringVar(&ajaxURL, "ajax", "", "Remote endpoint template containing {{value}}; switches to remote mode")
	rootCmd.Flags().IntVar(&debounceMs, "debounce-ms", 0, "Quiet period before a remote fetch fires (default 300)")
	rootCmd.Flags().StringVar(&extractExpr, "extract", "", "CEL expression mapping the fetched payload to candidates; '_' is the payload")
	rootCmd.Flags().BoolVar(&rankMatches, "rank", false, "Order matches by edit distance to the query")
	rootCmd.Flags().BoolVar(&confirmSelect, "confirm", false, "Ask for confirmation before accepting a selection")
	rootCmd.Flags().StringVar(&placeholder, "placeholder", "", "Input placeholder text")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme name: dark or light (default from config)")
	rootCmd.Flags().StringVar(&configFile, "config-file", "", "path to a YAML config file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging on stderr (same as --log-level -1)")
	rootCmd.Flags().Int8Var(&logLevel, "log-level", 0, "minimum zap log level (-1 debug, 0 info, 1 warn)")
	rootCmd.Flags().BoolVar(&printLabel, "print-label", false, "print the selected label instead of its value")
	rootCmd.Flags().IntVar(&widgetWidth, "width", 0, "Output width in columns (0 = detect)")
	rootCmd.Flags().IntVar(&widgetHeight, "height", 0, "Output height in rows (0 = detect)")

	rootCmd.Version = cliVersionString()
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
