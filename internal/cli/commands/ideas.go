package commands

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

// NewIdeasCommand creates all subcommands for the 'ideas' command group.
// Ideas are AI suggestions that have not been promoted to gifts yet; the
// 'ai ideas' command fills the list.
func NewIdeasCommand() *cli.Command {
	return &cli.Command{
		Name:  "ideas",
		Usage: "Work with AI-generated gift ideas for a recipient",
		Subcommands: []*cli.Command{
			ideasListCmd(),
			ideasPromoteCmd(),
			ideasDeleteCmd(),
			ideasClearCmd(),
		},
	}
}

func ideasListCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List a recipient's pending ideas",
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
			if len(p.GeneratedIdeas) == 0 {
				fmt.Printf("No pending ideas for %s. Generate some with 'giftwise ai ideas %s'.\n", p.Name, p.Name)
				return nil
			}
			fmt.Printf("Ideas for %s:\n", p.Name)
			for i, idea := range p.GeneratedIdeas {
				fmt.Printf("  %d. %s (%s)\n", i+1, idea.Name, money(idea.EstimatedPrice))
				if idea.Reason != "" {
					fmt.Printf("     %s\n", idea.Reason)
				}
				fmt.Printf("     %s\n", idea.SearchURL())
			}
			return nil
		},
	}
}

func ideasPromoteCmd() *cli.Command {
	return &cli.Command{
		Name:      "promote",
		Usage:     "Turn an idea into a real gift",
		ArgsUsage: "[person] [idea-number]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: ideas promote <person> <idea-number>")
			}
			n, err := strconv.Atoi(c.Args().Get(1))
			if err != nil || n < 1 {
				return fmt.Errorf("idea number must be a positive number")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().Get(0))
			if err != nil {
				return err
			}
			g, err := s.PromoteIdea(p.ID, n-1)
			if err != nil {
				return err
			}
			fmt.Printf("✅ '%s' (%s) added to %s's gift list.\n", g.Name, money(g.Price), p.Name)
			return nil
		},
	}
}

func ideasDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Discard a single idea",
		ArgsUsage: "[person] [idea-number]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: ideas delete <person> <idea-number>")
			}
			n, err := strconv.Atoi(c.Args().Get(1))
			if err != nil || n < 1 {
				return fmt.Errorf("idea number must be a positive number")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().Get(0))
			if err != nil {
				return err
			}
			if err := s.DeleteIdea(p.ID, n-1); err != nil {
				return err
			}
			fmt.Printf("🗑️ Idea %d discarded.\n", n)
			return nil
		},
	}
}

func ideasClearCmd() *cli.Command {
	return &cli.Command{
		Name:      "clear",
		Usage:     "Discard all of a recipient's pending ideas",
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
			if err := s.ClearIdeas(p.ID); err != nil {
				return err
			}
			fmt.Printf("🗑️ Cleared pending ideas for %s.\n", p.Name)
			return nil
		},
	}
}
