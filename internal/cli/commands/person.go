package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/stats"
)

// NewPersonCommand creates all subcommands for the 'person' command group.
func NewPersonCommand() *cli.Command {
	return &cli.Command{
		Name:    "person",
		Aliases: []string{"pe"},
		Usage:   "Manage gift recipients in the active project",
		Subcommands: []*cli.Command{
			personAddCmd(),
			personListCmd(),
			personDeleteCmd(),
			personBudgetCmd(),
			personMoveCmd(),
			personProfileCmd(),
		},
	}
}

func personAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a recipient to the active project",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "budget", Aliases: []string{"b"}, Value: 100, Usage: "Personal budget for this recipient"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("person name is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := s.AddPerson(c.Args().First(), c.Float64("budget"))
			if err != nil {
				return err
			}
			fmt.Printf("✅ Added %s with a %s budget.\n", p.Name, money(p.Budget))
			return nil
		},
	}
}

func personListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List the active project's recipients",
		Action: func(c *cli.Context) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			data := s.Data()
			if len(data.People) == 0 {
				fmt.Println("No recipients yet. Add one with 'giftwise person add <name>'.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tBUDGET\tSPENT\tLEFT\tGIFTS\tIDEAS")
			fmt.Fprintln(w, "--\t----\t------\t-----\t----\t-----\t-----")
			for _, p := range data.People {
				pt := stats.ForPerson(data, p)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\n",
					p.ID, p.Name, money(p.Budget), money(pt.Spent), money(pt.BudgetLeft),
					len(s.GiftsFor(p.ID)), len(p.GeneratedIdeas))
			}
			w.Flush()
			return nil
		},
	}
}

func personDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Remove a recipient and all their gifts",
		ArgsUsage: "[person]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Delete without confirmation"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("person name or id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().First())
			if err != nil {
				return err
			}

			gifts := len(s.GiftsFor(p.ID))
			if !c.Bool("force") {
				msg := fmt.Sprintf("Delete %s and their %d gift(s)?", p.Name, gifts)
				if !askForConfirmation(msg) {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := s.DeletePerson(p.ID); err != nil {
				return err
			}
			fmt.Printf("🗑️ Removed %s and %d gift(s).\n", p.Name, gifts)
			return nil
		},
	}
}

func personBudgetCmd() *cli.Command {
	return &cli.Command{
		Name:      "budget",
		Usage:     "Set a recipient's personal budget",
		ArgsUsage: "[person] [amount]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: person budget <person> <amount>")
			}
			amount, err := strconv.ParseFloat(c.Args().Get(1), 64)
			if err != nil || amount < 0 {
				return fmt.Errorf("amount must be a non-negative number")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().Get(0))
			if err != nil {
				return err
			}
			if err := s.SetPersonBudget(p.ID, amount); err != nil {
				return err
			}
			fmt.Printf("✅ %s's budget set to %s.\n", p.Name, money(amount))
			return nil
		},
	}
}

func personMoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "move",
		Usage:     "Move a recipient to a new position in the list",
		ArgsUsage: "[person] [position]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: person move <person> <position>")
			}
			pos, err := strconv.Atoi(c.Args().Get(1))
			if err != nil || pos < 1 {
				return fmt.Errorf("position must be a positive number")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().Get(0))
			if err != nil {
				return err
			}
			if err := s.MovePerson(p.ID, pos-1); err != nil {
				return err
			}
			fmt.Printf("✅ Moved %s to position %d.\n", p.Name, pos)
			return nil
		},
	}
}

func personProfileCmd() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "View or edit a recipient's gifting profile",
		Subcommands: []*cli.Command{
			profileShowCmd(),
			profileSetCmd(),
		},
	}
}

func profileShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print a recipient's profile",
		ArgsUsage: "[person]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("person name or id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().First())
			if err != nil {
				return err
			}
			if p.Profile.IsEmpty() {
				fmt.Printf("%s has no profile yet. Fill it with 'giftwise person profile set' or 'giftwise ai extract'.\n", p.Name)
				return nil
			}

			pr := p.Profile
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			rows := []struct{ label, value string }{
				{"Age", pr.Age},
				{"Relationship", pr.Relationship},
				{"Sex", pr.Sex},
				{"Shirt size", pr.ShirtSize},
				{"Shoe size", pr.ShoeSize},
				{"Other sizes", pr.OtherSize},
				{"Aesthetics", pr.Aesthetics},
				{"Obsession", pr.Obsession},
				{"Problem to solve", pr.ProblemToSolve},
				{"Do not buy", pr.DoNotBuy},
				{"Gift history", pr.GiftHistory},
				{"Shopping links", pr.ShoppingLinks},
			}
			fmt.Printf("Profile for %s:\n", p.Name)
			for _, r := range rows {
				if r.value == "" {
					continue
				}
				fmt.Fprintf(w, "  %s:\t%s\n", r.label, r.value)
			}
			w.Flush()
			if p.Strategy != "" {
				fmt.Printf("\nStrategy:\n%s\n", p.Strategy)
			}
			return nil
		},
	}
}

func profileSetCmd() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Set profile fields on a recipient",
		ArgsUsage: "[person]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "age", Usage: "Age or age range"},
			&cli.StringFlag{Name: "relationship", Usage: "Relationship to you"},
			&cli.StringFlag{Name: "sex", Usage: "Sex or gender"},
			&cli.StringFlag{Name: "shirt-size", Usage: "Shirt size"},
			&cli.StringFlag{Name: "shoe-size", Usage: "Shoe size"},
			&cli.StringFlag{Name: "other-size", Usage: "Other sizes (ring, hat, ...)"},
			&cli.StringFlag{Name: "aesthetics", Usage: "Style and aesthetics"},
			&cli.StringFlag{Name: "obsession", Usage: "Current obsession or hobby"},
			&cli.StringFlag{Name: "problem", Usage: "A problem a gift could solve"},
			&cli.StringFlag{Name: "do-not-buy", Usage: "Things to avoid"},
			&cli.StringFlag{Name: "history", Usage: "Past gifts given"},
			&cli.StringFlag{Name: "links", Usage: "Wishlist or shopping links"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("person name or id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().First())
			if err != nil {
				return err
			}

			pr := p.Profile
			set := func(dst *string, flag string) {
				if c.IsSet(flag) {
					*dst = c.String(flag)
				}
			}
			set(&pr.Age, "age")
			set(&pr.Relationship, "relationship")
			set(&pr.Sex, "sex")
			set(&pr.ShirtSize, "shirt-size")
			set(&pr.ShoeSize, "shoe-size")
			set(&pr.OtherSize, "other-size")
			set(&pr.Aesthetics, "aesthetics")
			set(&pr.Obsession, "obsession")
			set(&pr.ProblemToSolve, "problem")
			set(&pr.DoNotBuy, "do-not-buy")
			set(&pr.GiftHistory, "history")
			set(&pr.ShoppingLinks, "links")

			if err := s.UpdateProfile(p.ID, pr); err != nil {
				return err
			}
			fmt.Printf("✅ Profile updated for %s.\n", p.Name)
			return nil
		},
	}
}
