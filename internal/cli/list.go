package cli

import (
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trajview-io/trajview/internal/config"
	"github.com/trajview-io/trajview/internal/models"
	"github.com/trajview-io/trajview/internal/trajectory"
)

var listCmd = &cobra.Command{
	Use:   "list [conversations-dir]",
	Short: "List trajectories and their metrics",
	Long: `List the trajectories in a conversations directory, newest first,
with token usage and timing metrics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}
	conversationsDir, _, err := config.ResolveConversationsDir(input)
	if err != nil {
		return err
	}

	sources, err := trajectory.Scan(conversationsDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", conversationsDir, err)
	}
	if len(sources) == 0 {
		fmt.Println(styleHint.Render(fmt.Sprintf("No trajectories found in %s", conversationsDir)))
		return nil
	}

	summaries := make([]models.TrajectorySummary, 0, len(sources))
	for _, src := range sources {
		summaries = append(summaries, trajectory.Summarize(src))
	}

	renderSummaryTable(summaries)
	return nil
}

// narrowWidth is the terminal width below which the table drops to the
// compact column set.
const narrowWidth = 110

func renderSummaryTable(summaries []models.TrajectorySummary) {
	wide := true
	if width := getTerminalWidth(); width > 0 && width < narrowWidth {
		wide = false
	}

	var headers []string
	labelCols := 2
	if wide {
		headers = []string{"ID", "Title", "Model", "Events", "Prompt", "Completion", "Cache", "Cache %", "Total", "Avg Turn", "Conv Time"}
		labelCols = 3
	} else {
		headers = []string{"ID", "Title", "Events", "Total", "Conv Time"}
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
		})))
	table.Header(headers)

	// Labels left, metrics right.
	alignments := make([]tw.Align, len(headers))
	for i := range alignments {
		if i < labelCols {
			alignments[i] = tw.AlignLeft
		} else {
			alignments[i] = tw.AlignRight
		}
	}
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.PerColumn = alignments
	})

	var totalEvents int
	var totalPrompt, totalCompletion, totalCache, totalTokens int64
	var totalConv float64
	for _, sum := range summaries {
		totalEvents += sum.EventCount
		totalPrompt += sum.PromptTokens
		totalCompletion += sum.CompletionTokens
		totalCache += sum.CacheReadTokens
		totalTokens += sum.TotalTokens
		totalConv += sum.TotalConversationTime

		if wide {
			table.Append([]string{
				shortID(sum.ID),
				truncate(sum.Title, 30),
				modelName(sum.Model),
				fmt.Sprintf("%d", sum.EventCount),
				formatTokens(sum.PromptTokens),
				formatTokens(sum.CompletionTokens),
				formatTokens(sum.CacheReadTokens),
				fmt.Sprintf("%d%%", sum.CachePct),
				formatTokens(sum.TotalTokens),
				fmt.Sprintf("%.1fs", sum.AvgAgentTurnTime),
				fmt.Sprintf("%.1fs", sum.TotalConversationTime),
			})
		} else {
			table.Append([]string{
				shortID(sum.ID),
				truncate(sum.Title, 24),
				fmt.Sprintf("%d", sum.EventCount),
				formatTokens(sum.TotalTokens),
				fmt.Sprintf("%.1fs", sum.TotalConversationTime),
			})
		}
	}

	if wide {
		table.Footer([]string{
			"Total", "", "",
			fmt.Sprintf("%d", totalEvents),
			formatTokens(totalPrompt),
			formatTokens(totalCompletion),
			formatTokens(totalCache),
			"",
			formatTokens(totalTokens),
			"",
			fmt.Sprintf("%.1fs", totalConv),
		})
	} else {
		table.Footer([]string{
			"Total", "",
			fmt.Sprintf("%d", totalEvents),
			formatTokens(totalTokens),
			fmt.Sprintf("%.1fs", totalConv),
		})
	}

	table.Render()
}

// shortID returns the leading characters of a trajectory ID, enough to
// identify it at a glance.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// modelName renders a summary's raw model value for display.
func modelName(raw jsontext.Value) string {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil || name == "" {
		return "-"
	}
	return name
}

// formatTokens formats a token count in a human-readable way.
func formatTokens(tokens int64) string {
	if tokens == 0 {
		return "0"
	}

	switch {
	case tokens >= 1_000_000_000:
		return fmt.Sprintf("%.1fb", float64(tokens)/1_000_000_000.0)
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fm", float64(tokens)/1_000_000.0)
	case tokens >= 1_000:
		return fmt.Sprintf("%.1fk", float64(tokens)/1_000.0)
	default:
		return fmt.Sprintf("%d", tokens)
	}
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0 // Not a terminal
	}
	return width
}
