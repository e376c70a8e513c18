package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwarden/dew/internal/config"
	"github.com/cwarden/dew/internal/hydration"
	"github.com/cwarden/dew/internal/sprite"
	"github.com/cwarden/dew/internal/ui"
	"github.com/spf13/cobra"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	cfgFile      string
	snapshotFile string
	frameDir     string
	cfg          *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dew",
	Short: "A terminal hydration pet",
	Long: `Dew is a small water droplet that lives in your terminal. Drag it
around, click it to log a drink, and it will remind you when it has been
too long since your last sip.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to dewrc file")
	rootCmd.PersistentFlags().StringVar(&snapshotFile, "snapshot", "", "Path to hydration snapshot file")
	rootCmd.PersistentFlags().StringVar(&frameDir, "frames", "", "Directory with idle.txt, panic.txt and hover.txt sprite frames")
}

func initConfig() {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFile(cfgFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if snapshotFile != "" {
		cfg.SnapshotFile = snapshotFile
	}
	if frameDir != "" {
		cfg.FrameDir = frameDir
	}
}

// openLedger loads the snapshot named by the config.
func openLedger() *hydration.Ledger {
	return hydration.Open(hydration.NewFileStore(cfg.SnapshotFile), nil)
}

// setupLogging sends the standard logger to the configured log file, or
// nowhere. The returned closer is never nil.
func setupLogging() (io.Closer, error) {
	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(cfg.LogFile, "dew")
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	frames, err := sprite.Load(cfg.FrameDir)
	if err != nil {
		return fmt.Errorf("loading sprite frames: %w", err)
	}

	ledger := openLedger()

	model, err := ui.NewModel(cfg, ledger, frames, nil)
	if err != nil {
		return fmt.Errorf("starting pet: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	return nil
}
