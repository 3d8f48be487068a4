package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

// NewProjectCommand creates all subcommands for the 'project' command group.
func NewProjectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Manage gift plans (projects)",
		Subcommands: []*cli.Command{
			projectListCmd(),
			projectCreateCmd(),
			projectRenameCmd(),
			projectDeleteCmd(),
			projectSwitchCmd(),
			projectLimitCmd(),
		},
	}
}

func projectListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all projects",
		Action: func(c *cli.Context) error {
			s, err := openStore()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tACTIVE")
			fmt.Fprintln(w, "--\t----\t------")
			for _, p := range s.Projects() {
				active := ""
				if p.ID == s.ActiveID() {
					active = "✓"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(p.ID), p.Name, active)
			}
			w.Flush()
			return nil
		},
	}
}

func projectCreateCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a new project and switch to it",
		ArgsUsage: "[name]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project name is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := s.Create(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Printf("✅ Project '%s' created and activated.\n", p.Name)
			return nil
		},
	}
}

func projectRenameCmd() *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a project",
		ArgsUsage: "[project] [new-name]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: project rename <project> <new-name>")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, ok := s.FindProject(c.Args().Get(0))
			if !ok {
				return fmt.Errorf("no project matching %q", c.Args().Get(0))
			}
			if err := s.Rename(p.ID, c.Args().Get(1)); err != nil {
				return err
			}
			fmt.Printf("✅ Project renamed to '%s'.\n", c.Args().Get(1))
			return nil
		},
	}
}

func projectDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a project and all its people and gifts",
		ArgsUsage: "[project]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Delete without confirmation"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project name or id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, ok := s.FindProject(c.Args().First())
			if !ok {
				return fmt.Errorf("no project matching %q", c.Args().First())
			}

			if !c.Bool("force") {
				msg := fmt.Sprintf("Delete project '%s'? This removes all its gifts and cannot be undone.", p.Name)
				if !askForConfirmation(msg) {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := s.Delete(p.ID); err != nil {
				return err
			}
			fmt.Printf("🗑️ Project '%s' deleted.\n", p.Name)
			if active, ok := s.Active(); ok {
				fmt.Printf("Now on '%s'.\n", active.Name)
			} else {
				fmt.Println("No projects left; create one with 'giftwise project create'.")
			}
			return nil
		},
	}
}

func projectSwitchCmd() *cli.Command {
	return &cli.Command{
		Name:      "switch",
		Aliases:   []string{"use"},
		Usage:     "Switch the active project",
		ArgsUsage: "[project]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("project name or id is required")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, ok := s.FindProject(c.Args().First())
			if !ok {
				return fmt.Errorf("no project matching %q", c.Args().First())
			}
			if err := s.SwitchTo(p.ID); err != nil {
				return err
			}
			data := s.Data()
			fmt.Printf("✅ Switched to '%s' (%d people, %d gifts).\n", p.Name, len(data.People), len(data.Gifts))
			return nil
		},
	}
}

func projectLimitCmd() *cli.Command {
	return &cli.Command{
		Name:      "limit",
		Usage:     "Set the active project's total budget ceiling",
		ArgsUsage: "[amount]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("amount is required")
			}
			amount, err := strconv.ParseFloat(c.Args().First(), 64)
			if err != nil || amount < 0 {
				return fmt.Errorf("amount must be a non-negative number")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.SetLimit(amount); err != nil {
				return err
			}
			fmt.Printf("✅ Budget ceiling set to %s.\n", money(amount))
			return nil
		},
	}
}
