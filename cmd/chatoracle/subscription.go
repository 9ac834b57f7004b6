package main

import (
	"fmt"

	"github.com/floegence/chatoracle/internal/ledger"
	"github.com/spf13/cobra"
)

func newSubscriptionCmd(a *app) *cobra.Command {
	var idRaw, balanceRaw string
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Classify a subscription id and balance (base units)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := ledger.ParseAmount(idRaw)
			if !ok {
				return fmt.Errorf("invalid --id: %q", idRaw)
			}
			balance, ok := ledger.ParseAmount(balanceRaw)
			if !ok {
				return fmt.Errorf("invalid --balance: %q", balanceRaw)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ledger.StatusLine(id, balance, a.cfg.EffectiveCurrencySymbol()))
			fmt.Fprintf(out, "active: %t\nneeds deposit: %t\ncan withdraw: %t\n",
				ledger.HasActiveSubscription(id), ledger.NeedsDeposit(id, balance), ledger.CanWithdraw(id, balance))
			return nil
		},
	}
	cmd.Flags().StringVar(&idRaw, "id", "", "Subscription id (empty: none)")
	cmd.Flags().StringVar(&balanceRaw, "balance", "", "Subscription balance in base units (empty: unknown)")
	return cmd
}
