package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/models"
	"github.com/giftwise/giftwise-cli/internal/stats"
	"github.com/giftwise/giftwise-cli/internal/store"
)

// NewGiftCommand creates all subcommands for the 'gift' command group.
func NewGiftCommand() *cli.Command {
	return &cli.Command{
		Name:    "gift",
		Aliases: []string{"g"},
		Usage:   "Manage gifts in the active project",
		Subcommands: []*cli.Command{
			giftAddCmd(),
			giftListCmd(),
			giftShowCmd(),
			giftEditCmd(),
			giftStatusCmd(),
			giftDeleteCmd(),
		},
	}
}

func giftAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a gift for a recipient",
		ArgsUsage: "[person] [name]",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "price", Aliases: []string{"p"}, Usage: "Price of the gift"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category (Fun, Education, Health, Practical)"},
			&cli.StringFlag{Name: "notes", Aliases: []string{"n"}, Usage: "Free-form notes"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: gift add <person> <name> [--price N]")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			person, err := resolvePerson(s, c.Args().Get(0))
			if err != nil {
				return err
			}

			price := c.Float64("price")
			data := s.Data()
			projected := stats.ProjectedTotal(data, 0, price)
			g, err := s.AddGift(person.ID, c.Args().Get(1), price, c.String("category"), c.String("notes"))
			if err != nil {
				return err
			}
			fmt.Printf("✅ Added '%s' (%s) for %s.\n", g.Name, money(g.Price), person.Name)
			warnBudgets(s, person, projected)
			return nil
		},
	}
}

// warnBudgets prints independent warnings when the recipient's personal
// budget or the project ceiling is exceeded. Both can fire for one gift.
func warnBudgets(s *store.Store, person models.Person, projected float64) {
	data := s.Data()
	if fresh, ok := s.Person(person.ID); ok {
		person = fresh
	}
	pt := stats.ForPerson(data, person)
	if pt.Planned > person.Budget {
		fmt.Printf("⚠️  %s's planned gifts (%s) exceed their %s budget.\n", person.Name, money(pt.Planned), money(person.Budget))
	}
	if stats.IsOverBudget(projected, data.Limit) {
		fmt.Printf("⚠️  Project total %s is over the %s ceiling by %s.\n",
			money(projected), money(data.Limit), money(stats.OverBudgetAmount(projected, data.Limit)))
	}
}

func giftListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the active project's gifts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "person", Usage: "Only show gifts for this recipient"},
			&cli.StringFlag{Name: "status", Usage: "Only show gifts with this status (idea, bought, wrapped)"},
		},
		Action: func(c *cli.Context) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			data := s.Data()
			gifts := data.Gifts
			if ref := c.String("person"); ref != "" {
				p, err := resolvePerson(s, ref)
				if err != nil {
					return err
				}
				gifts = s.GiftsFor(p.ID)
			}
			if want := c.String("status"); want != "" {
				st := models.Status(strings.ToLower(want))
				if !st.Valid() {
					return fmt.Errorf("unknown status %q", want)
				}
				filtered := gifts[:0:0]
				for _, g := range gifts {
					if g.Status == st {
						filtered = append(filtered, g)
					}
				}
				gifts = filtered
			}
			if len(gifts) == 0 {
				fmt.Println("No gifts found.")
				return nil
			}

			names := make(map[int64]string, len(data.People))
			for _, p := range data.People {
				names[p.ID] = p.Name
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFOR\tGIFT\tPRICE\tSTATUS\tCATEGORY")
			fmt.Fprintln(w, "--\t---\t----\t-----\t------\t--------")
			for _, g := range gifts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s %s\t%s\n",
					g.ID, names[g.PersonID], truncateString(g.Name, 40), money(g.Price),
					statusIcon(g.Status), g.Status, g.Category)
			}
			w.Flush()
			return nil
		},
	}
}

func giftShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a gift's full details",
		ArgsUsage: "[gift-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("gift id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			g, err := resolveGift(s, c.Args().First())
			if err != nil {
				return err
			}
			person, _ := s.Person(g.PersonID)

			fmt.Printf("%s %s\n", statusIcon(g.Status), g.Name)
			fmt.Printf("  For:      %s\n", person.Name)
			fmt.Printf("  Price:    %s\n", money(g.Price))
			fmt.Printf("  Status:   %s\n", g.Status)
			fmt.Printf("  Category: %s\n", g.Category)
			if g.Notes != "" {
				fmt.Printf("  Notes:    %s\n", g.Notes)
			}
			if g.Analysis != "" {
				fmt.Printf("\nAI analysis:\n%s\n", g.Analysis)
			}
			return nil
		},
	}
}

func giftEditCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a gift's fields",
		ArgsUsage: "[gift-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "New name"},
			&cli.Float64Flag{Name: "price", Value: -1, Usage: "New price"},
			&cli.StringFlag{Name: "category", Usage: "New category"},
			&cli.StringFlag{Name: "notes", Usage: "New notes"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("gift id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			g, err := resolveGift(s, c.Args().First())
			if err != nil {
				return err
			}

			price := c.Float64("price")
			var projected float64
			if price >= 0 {
				projected = stats.ProjectedTotal(s.Data(), g.ID, price)
			}
			if err := s.EditGift(g.ID, c.String("name"), price, c.String("category"), c.String("notes")); err != nil {
				return err
			}
			fmt.Printf("✅ Gift %d updated.\n", g.ID)
			if price >= 0 {
				if person, ok := s.Person(g.PersonID); ok {
					warnBudgets(s, person, projected)
				}
			}
			return nil
		},
	}
}

func giftStatusCmd() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Advance a gift's status (idea -> bought -> wrapped -> idea)",
		ArgsUsage: "[gift-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("gift id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			g, err := resolveGift(s, c.Args().First())
			if err != nil {
				return err
			}
			updated, err := s.AdvanceGiftStatus(g.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s '%s' is now %s.\n", statusIcon(updated.Status), updated.Name, updated.Status)
			return nil
		},
	}
}

func giftDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a gift",
		ArgsUsage: "[gift-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Delete without confirmation"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("gift id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			g, err := resolveGift(s, c.Args().First())
			if err != nil {
				return err
			}
			if !c.Bool("force") {
				if !askForConfirmation(fmt.Sprintf("Delete '%s'?", g.Name)) {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := s.DeleteGift(g.ID); err != nil {
				return err
			}
			fmt.Printf("🗑️ Deleted '%s'.\n", g.Name)
			return nil
		},
	}
}
