package main

import (
	"encoding/json"
	"fmt"

	"github.com/floegence/chatoracle/internal/inference"
	"github.com/spf13/cobra"
)

func newDecodeCmd(a *app) *cobra.Command {
	var asOpenAI bool
	cmd := &cobra.Command{
		Use:   "decode [payload]",
		Short: "Decode a 0x request payload back into JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readArgOrStdin(cmd, args)
			if err != nil {
				return err
			}
			body, err := inference.DecodeRequestBody(raw)
			if err != nil {
				return err
			}

			var v any = body
			if asOpenAI {
				v = body.ChatCompletionParams()
			}
			b, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			a.log.Debug("decoded request", "messages", len(body.Messages), "model", body.Model)
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asOpenAI, "openai", false, "Print the request as OpenAI SDK chat completion params")
	return cmd
}
