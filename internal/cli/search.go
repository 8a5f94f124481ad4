package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/adapter/retriever"
	"github.com/Kailramiya/AI4Chat-ai-assistant/internal/config"
)

var (
	searchMode  string
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Query the knowledge retriever without the server",
	Long: `Run the configured retriever locally and print the ranked hits.

The retriever is configured from the same environment as the server
(RETRIEVER_MODE, RETRIEVER_COMMAND, RETRIEVER_ARGS, KNOWLEDGE_FILE).

Examples:
  supportctl search "hoodie sizes"
  supportctl search "return policy" --mode local -n 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchMode, "mode", "", "retriever mode (subprocess, local, mock)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "max results (RETRIEVER_LIMIT when zero)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	mode := cfg.RetrieverMode
	if searchMode != "" {
		mode = searchMode
	}
	limit := cfg.RetrieverLimit
	if searchLimit > 0 {
		limit = searchLimit
	}

	r, err := retriever.New(retriever.Options{
		Mode:          mode,
		Command:       cfg.RetrieverCommand,
		Args:          cfg.RetrieverArgs,
		Timeout:       cfg.RetrieverTimeout,
		KnowledgeFile: cfg.KnowledgeFile,
	})
	if err != nil {
		return fmt.Errorf("init retriever: %w", err)
	}

	docs, err := r.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	fmt.Fprintf(out, "Found %d results:\n\n", len(docs))
	for i, d := range docs {
		fmt.Fprintf(out, "%d. %s [%.3f]\n", i+1, d.Title, d.Score)
		fmt.Fprintf(out, "   %s\n", d.URL)
		if verbose {
			text := d.Text
			if r := []rune(text); len(r) > 100 {
				text = string(r[:100]) + "..."
			}
			fmt.Fprintf(out, "   %s\n", text)
		}
	}
	return nil
}
