package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/domain"
)

var trackEmail string

var trackCmd = &cobra.Command{
	Use:   "track <order-id>",
	Short: "Track an order and remember it on the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

func init() {
	trackCmd.Flags().StringVar(&trackEmail, "email", "", "customer email stored with the order")
}

func runTrack(cmd *cobra.Command, args []string) error {
	req := domain.TrackOrderRequest{OrderID: args[0], SessionID: sessionID}
	if trackEmail != "" {
		req.CustomerInfo = map[string]any{"email": trackEmail}
	}

	resp, err := NewClient(serverURL, 10*time.Second).TrackOrder(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("track order: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order %s: ", resp.OrderID)
	botColor.Fprintln(out, resp.TrackingInfo.Status)
	fmt.Fprintln(out, resp.TrackingInfo.Details)
	hintColor.Fprintf(out, "session: %s\n", sessionID)
	return nil
}
