package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

var askTimeout time.Duration

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send a single chat turn over HTTP",
	Long: `Send one message to the assistant and print the reply with its sources.

Examples:
  supportctl ask "What is the price of the blue hoodie in size M?"
  supportctl ask "track my order" --session s1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 30*time.Second, "request timeout")
}

func runAsk(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL, askTimeout)
	resp, err := client.Chat(cmd.Context(), domain.ChatRequest{
		Message:   strings.Join(args, " "),
		SessionID: sessionID,
	})
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	printReply(cmd.OutOrStdout(), resp.Response, resp.Sources)
	if verbose {
		hintColor.Fprintf(cmd.OutOrStdout(), "session: %s\n", resp.SessionID)
	}
	return nil
}

func printReply(w io.Writer, response string, sources []domain.Source) {
	botColor.Fprintln(w, response)
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources:")
	for i, s := range sources {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, s.Title, s.URL)
	}
}
