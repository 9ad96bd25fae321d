package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
)

var (
	// titleStyle for the workbook name
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// labelStyle for collection names
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(20)

	// countStyle for non-zero counts
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// emptyStyle for collections that will be left out of the report
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [input.twb]",
		Short: "Print record counts per collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			md, err := twbmeta.Extract(args[0], extractOptions())
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(md))
			return nil
		},
	}
}

// renderSummary draws the per-collection counts in a rounded box.
func renderSummary(md *models.Metadata) string {
	lines := []string{titleStyle.Render(md.BookName)}
	for _, t := range md.Tables() {
		count := emptyStyle.Render("-")
		if len(t.Rows) > 0 {
			count = countStyle.Render(fmt.Sprintf("%d", len(t.Rows)))
		}
		lines = append(lines, labelStyle.Render(t.Name)+count)
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
