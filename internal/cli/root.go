// Package cli provides the supportctl command-line interface.
package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	serverURL string
	sessionID string
	verbose   bool
)

var (
	botColor   = color.New(color.FgCyan)
	errorColor = color.New(color.FgRed, color.Bold)
	hintColor  = color.New(color.Faint, color.Italic)
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "supportctl",
	Short: "Talk to the support assistant",
	Long: `supportctl is a terminal client for the support assistant.

It can hold an interactive chat over WebSocket, send single turns over HTTP,
track orders, and query the knowledge retriever directly.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if sessionID == "" {
			sessionID = newSessionID()
		}
		serverURL = strings.TrimRight(serverURL, "/")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "support assistant base URL")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "session ID (random when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(searchCmd)
}

func newSessionID() string {
	return "cli_" + uuid.New().String()[:8]
}
