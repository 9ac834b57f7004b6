package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/floegence/chatoracle/internal/inference"
	"github.com/floegence/chatoracle/internal/transcript"
	"github.com/spf13/cobra"
)

func newEncodeCmd(a *app) *cobra.Command {
	var historyPath string
	cmd := &cobra.Command{
		Use:   "encode [prompt]",
		Short: "Encode a prompt and optional history into the hex request payload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readArgOrStdin(cmd, args)
			if err != nil {
				return err
			}
			history, err := loadHistory(historyPath)
			if err != nil {
				return err
			}
			payload := inference.BuildRequestBody(prompt, inference.Options{History: history})
			a.log.Debug("encoded request", "history", len(history), "payload_bytes", (len(payload)-2)/2)
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "JSON file with an array of transcript messages")
	return cmd
}

func loadHistory(path string) ([]transcript.Message, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var history []transcript.Message
	if err := json.Unmarshal(b, &history); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	return history, nil
}
