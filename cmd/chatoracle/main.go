package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/floegence/chatoracle/internal/config"
	"github.com/floegence/chatoracle/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version is set via -ldflags at build time.
	Version = "dev"
	// Commit is set via -ldflags at build time.
	Commit = "unknown"
)

type app struct {
	configPath string
	logFormat  string
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "chatoracle",
		Short:        "Assemble and encode transcripts for the on-chain chat oracle",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath(), "Config file path")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json|text (empty: config value)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (empty: config value)")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newTranscriptCmd(a),
		newChatCmd(a),
		newSubscriptionCmd(a),
		newConfigCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "chatoracle %s (%s)\n", Version, Commit)
			},
		},
	)
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if strings.TrimSpace(a.logFormat) != "" {
		cfg.LogFormat = a.logFormat
	}
	if strings.TrimSpace(a.logLevel) != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(cfg.LogFormat, cfg.LogLevel, logOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// readArgOrStdin returns args[0] when given, otherwise all of stdin.
func readArgOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
