package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/stats"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// NewOverviewCommand creates the overview command, a dashboard of the active
// project's budget position.
func NewOverviewCommand() *cli.Command {
	return &cli.Command{
		Name:    "overview",
		Aliases: []string{"o"},
		Usage:   "Show the active project's budget dashboard",
		Action: func(c *cli.Context) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			project, ok := s.Active()
			if !ok {
				fmt.Println("No active project. Create one with 'giftwise project create <name>'.")
				return nil
			}

			data := s.Data()
			t := stats.Compute(data)

			fmt.Println(titleStyle.Render(fmt.Sprintf("🎁 %s", project.Name)))
			fmt.Println()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Budget ceiling:\t%s\n", money(data.Limit))
			fmt.Fprintf(w, "Allocated to people:\t%s\n", money(t.TotalPeopleBudget))
			fmt.Fprintf(w, "Planned (all gifts):\t%s\n", money(t.TotalPlanned))
			fmt.Fprintf(w, "Spent (bought+wrapped):\t%s\n", money(t.TotalSpent))
			fmt.Fprintf(w, "Gifts:\t%d total, %d bought, %d wrapped\n", t.TotalGifts, t.GiftsBought, t.GiftsWrapped)
			w.Flush()
			fmt.Println()

			remaining := stats.RemainingBudget(data)
			if remaining < 0 {
				fmt.Println(warnStyle.Render(fmt.Sprintf("⚠️  Over the ceiling by %s", money(-remaining))))
			} else {
				fmt.Println(okStyle.Render(fmt.Sprintf("✅ %s left under the ceiling", money(remaining))))
			}
			if unallocated := stats.UnallocatedBudget(data); unallocated < 0 {
				fmt.Println(warnStyle.Render(fmt.Sprintf("⚠️  Personal budgets exceed the ceiling by %s", money(-unallocated))))
			}

			if len(data.People) == 0 {
				fmt.Println(dimStyle.Render("\nNo recipients yet. Add one with 'giftwise person add <name>'."))
				return nil
			}

			fmt.Println()
			pw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(pw, "PERSON\tBUDGET\tSPENT\tLEFT\tGIFTS")
			for _, p := range data.People {
				pt := stats.ForPerson(data, p)
				left := money(pt.BudgetLeft)
				if pt.BudgetLeft < 0 {
					left = warnStyle.Render(left)
				}
				fmt.Fprintf(pw, "%s\t%s\t%s\t%s\t%d\n", p.Name, money(p.Budget), money(pt.Spent), left, len(s.GiftsFor(p.ID)))
			}
			pw.Flush()
			return nil
		},
	}
}
