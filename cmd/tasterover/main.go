package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tasterover/cmd/tasterover/shell"
	"tasterover/internal/api"
	"tasterover/internal/config"
	"tasterover/internal/failure"
	"tasterover/internal/logging"
	"tasterover/internal/session"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tasterover",
	Short: "Taste Rover - weather, calories and menus in your terminal",
	Long: `Taste Rover looks up the UK weather for a postcode, estimates calories
for a list of ingredients and browses the McDonald's menu with full
nutrition detail.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive interface owns the terminal; it logs to files only.
		if cmd == cmd.Root() {
			return nil
		}

		zc := zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		zc.DisableStacktrace = true
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (or set TASTEROVER_API_URL)")

	menuCmd.Flags().StringVar(&menuItem, "item", "", "Show the full detail of one product")

	rootCmd.AddCommand(weatherCmd)
	rootCmd.AddCommand(nutritionCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(doctorCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies command-line overrides and
// starts file logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if err := logging.Initialize(cfg.LoggingOptions()); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}

// newSession wires a backend client into a fresh session.
func newSession(cfg *config.Config) (*session.Session, *api.Client) {
	client := api.NewClient(cfg.API.BaseURL, cfg.GetAPITimeout())
	return session.New(client, failure.AdminMessage(cfg.AdminContact)), client
}

func runInteractive(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Boot("backend %s, timeout %q", cfg.API.BaseURL, cfg.API.Timeout)

	sess, _ := newSession(cfg)
	model := shell.New(ctx, sess, shell.Options{
		Theme:    cfg.UI.Theme,
		WordWrap: cfg.UI.WordWrap,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
