package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/floegence/chatoracle/internal/chain"
	"github.com/floegence/chatoracle/internal/ledger"
	"github.com/floegence/chatoracle/internal/transcript"
	"github.com/spf13/cobra"
)

type eventsFile struct {
	MessageLogs  []transcript.MessageSentLog      `json:"message_logs"`
	ResponseLogs []transcript.ResponseReceivedLog `json:"response_logs"`
}

func newTranscriptCmd(a *app) *cobra.Command {
	var eventsPath string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "transcript",
		Short: "Rebuild the confirmed transcript from MessageSent/ResponseReceived logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(eventsPath)
			if err != nil {
				return err
			}
			var ev eventsFile
			if err := json.Unmarshal(b, &ev); err != nil {
				return fmt.Errorf("parse events %s: %w", eventsPath, err)
			}

			lines := transcript.BuildFromEvents(ev.MessageLogs, ev.ResponseLogs)
			a.log.Info("transcript rebuilt", "chain_id", a.cfg.ChainID, "messages", len(ev.MessageLogs), "responses", len(ev.ResponseLogs), "lines", len(lines))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(lines)
			}
			for _, m := range lines {
				fmt.Fprintf(out, "#%s %-9s %s\n    tx %s  %s\n",
					m.MessageID, m.Role, m.Content,
					ledger.FormatTxHashShort(string(m.TxHash)),
					chain.ExplorerTxURL(a.cfg.ChainID, string(m.TxHash)),
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&eventsPath, "events", "", "JSON file with message_logs and response_logs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the transcript as JSON")
	_ = cmd.MarkFlagRequired("events")
	return cmd
}
