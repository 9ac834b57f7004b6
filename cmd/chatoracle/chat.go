package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/floegence/chatoracle/internal/debuglog"
	"github.com/floegence/chatoracle/internal/session"
	"github.com/floegence/chatoracle/internal/transcript"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newChatCmd(a *app) *cobra.Command {
	var historyPath string
	var showDebug bool
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Dry-run chat session: each input line is encoded as the next on-chain request",
		Long: `Reads one prompt per line and prints the payload a wallet would submit.

No transaction is sent. Each prompt is treated as confirmed without a response,
so it becomes history for the next one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := loadHistory(historyPath)
			if err != nil {
				return err
			}

			dbg := debuglog.New(debuglog.Options{MaxLogs: a.cfg.EffectiveDebugMaxLogs(), Sink: a.log})
			defer dbg.Close()

			s := session.New(session.Options{Log: a.log, Debug: dbg})
			conv := conversationFromHistory(history)
			s.Sync(conv, nil, nil, nil)

			out := cmd.OutOrStdout()
			s.OnSubmit(func(sub session.Submission) {
				fmt.Fprintln(out, sub.Payload)
			})

			interactive := isTerminalReader(cmd.InOrStdin())
			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
			for {
				if interactive {
					fmt.Fprint(out, "> ")
				}
				if !sc.Scan() {
					break
				}
				line := sc.Text()
				if strings.TrimSpace(line) == "/quit" {
					break
				}

				in := s.Input()
				in.SetValue(line)
				if !in.HandleKey("Enter") {
					continue
				}
				p, ok := s.Pending()
				if !ok {
					continue
				}
				conv = append(conv, transcript.ConversationItem{Prompt: p.Content})
				s.Sync(conv, nil, nil, nil)
			}
			if err := sc.Err(); err != nil {
				return err
			}

			a.log.Info("chat session finished", "prompts", len(conv))
			if showDebug {
				for _, l := range dbg.Logs() {
					fmt.Fprintln(cmd.ErrOrStderr(), l)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&historyPath, "history", "", "JSON file with an array of transcript messages to start from")
	cmd.Flags().BoolVar(&showDebug, "debug", false, "Print the debug log buffer on exit")
	return cmd
}

// conversationFromHistory pairs each user line with the assistant line that follows it.
func conversationFromHistory(history []transcript.Message) []transcript.ConversationItem {
	var out []transcript.ConversationItem
	for _, m := range history {
		switch m.Role {
		case transcript.RoleUser:
			out = append(out, transcript.ConversationItem{Prompt: m.Content})
		case transcript.RoleAssistant:
			if n := len(out); n > 0 && out[n-1].Response == "" {
				out[n-1].Response = m.Content
			}
		}
	}
	return out
}

func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
