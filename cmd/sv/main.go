package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/sceneview/pkg/config"
	"github.com/vanderheijden86/sceneview/pkg/ui"
	"github.com/vanderheijden86/sceneview/pkg/version"
)

// isTerminal reports whether fd is a terminal. Tests replace it.
var isTerminal = term.IsTerminal

type options struct {
	configPath string
	logFile    string
	robotFrame bool
	width      int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sv",
		Short: "sv is a scene hierarchy inspector for the terminal",
		Long: `sv shows a scene hierarchy as a collapsible tree. Expand and collapse
branches, toggle node visibility and rename nodes from the keyboard.

Settings are read from the nearest .sv/config.yaml and reloaded on change.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("sv {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default: nearest .sv/config.yaml)")
	flags.StringVar(&opts.logFile, "log-file", "", "Write debug log to this file (overrides log.file)")
	flags.BoolVar(&opts.robotFrame, "robot-frame", false, "Render the first frame headlessly and print its rows as JSON")
	flags.IntVar(&opts.width, "width", 0, "Frame width for --robot-frame (default: ui.panel_width)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	path := opts.configPath
	if path == "" {
		path = config.Discover()
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !errors.Is(err, config.ErrInvalid) {
			return err
		}
		// Bad settings fall back to defaults
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v (using defaults)\n", err)
	}

	if opts.robotFrame {
		return writeRobotFrame(cmd.OutOrStdout(), cfg, opts.width)
	}

	if !isTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal (use --robot-frame for headless output)")
	}

	logFile := opts.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "sv")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		// Anything written to stderr would corrupt the alt screen
		log.SetOutput(io.Discard)
	}

	m := ui.NewModel(ui.NewPanelState(), cfg, ui.DefaultTheme(lipgloss.DefaultRenderer()))

	w, err := config.NewWatcher(path)
	if err != nil {
		log.Printf("warning: config hot reload disabled: %v", err)
	} else {
		defer w.Close()
		m = m.WithWatcher(w)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running sv: %w", err)
	}
	return nil
}

// robotFrame is the --robot-frame output.
type robotFrame struct {
	GeneratedAt string   `json:"generated_at"`
	Version     string   `json:"version"`
	Width       int      `json:"width"`
	Tab         string   `json:"tab"`
	Rows        []ui.Row `json:"rows"`
	Lines       []string `json:"lines"`
}

// writeRobotFrame renders the first frame without a terminal and encodes
// it for scripts and agents. Lines are plain text.
func writeRobotFrame(out io.Writer, cfg config.Config, width int) error {
	if width <= 0 {
		width = cfg.UI.PanelWidth
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	state := ui.NewPanelState()
	f := ui.RenderOnce(state, cfg, ui.DefaultTheme(r), width)

	output := robotFrame{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
		Width:       f.Width(),
		Tab:         state.Tab.String(),
		Rows:        f.Rows(),
		Lines:       f.TreeLines(),
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	return nil
}
