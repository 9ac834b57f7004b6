package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/floegence/chatoracle/internal/chain"
	"github.com/floegence/chatoracle/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config to --config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := config.Save(a.configPath, config.Default()); err != nil {
				return err
			}
			a.log.Info("config written", "path", a.configPath)
			fmt.Fprintln(cmd.OutOrStdout(), a.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings for the configured chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			name := "unknown"
			if c, ok := chain.Lookup(cfg.ChainID); ok {
				name = c.Name
			}
			contract, ok := cfg.ContractAddress()
			if !ok {
				contract = "(none)"
			}
			rpc := cfg.EffectiveRPCURL()
			if rpc == "" {
				rpc = "(none)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "chain:      %d (%s)\n", cfg.ChainID, name)
			fmt.Fprintf(out, "rpc:        %s\n", rpc)
			fmt.Fprintf(out, "contract:   %s\n", contract)
			fmt.Fprintf(out, "explorer:   %s\n", chain.ExplorerBaseURL(cfg.ChainID))
			fmt.Fprintf(out, "currency:   %s\n", cfg.EffectiveCurrencySymbol())
			fmt.Fprintf(out, "debug logs: %d\n", cfg.EffectiveDebugMaxLogs())
			return nil
		},
	}

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List the known chains",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, c := range chain.Known() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-7d %-18s %-5s %s\n", c.ID, c.Name, c.CurrencySymbol, c.RPCURL)
			}
		},
	}

	cmd.AddCommand(initCmd, showCmd, chainsCmd)
	return cmd
}
