package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/store"
)

// NewBackupCommand creates all subcommands for the 'backup' command group.
func NewBackupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Export and import all gift plans as a single JSON document",
		Subcommands: []*cli.Command{
			backupExportCmd(),
			backupImportCmd(),
		},
	}
}

func backupExportCmd() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write a full backup to a file (default: gift_planner_backup_<date>.json)",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			s, err := openStore()
			if err != nil {
				return err
			}
			doc, err := s.Export()
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}

			path := defaultBackupName(time.Now())
			if c.NArg() > 0 {
				path = c.Args().First()
			}
			if err := os.WriteFile(path, payload, 0o644); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}
			fmt.Printf("✅ Backup written to %s (%d project(s)).\n", path, len(doc.Projects))
			return nil
		},
	}
}

func defaultBackupName(now time.Time) string {
	return "gift_planner_backup_" + now.Format("2006-01-02") + ".json"
}

func backupImportCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Restore all plans from a backup file, replacing current data",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Import without confirmation"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("backup file is required")
			}
			payload, err := os.ReadFile(c.Args().First())
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
			}
			var doc store.Document
			if err := json.Unmarshal(payload, &doc); err != nil {
				return fmt.Errorf("not a valid backup file: %w", err)
			}

			if !c.Bool("force") {
				msg := fmt.Sprintf("Import %d project(s) and replace everything currently stored?", len(doc.Projects))
				if !askForConfirmation(msg) {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			s, err := openStore()
			if err != nil {
				return err
			}
			if err := s.Import(doc); err != nil {
				return err
			}
			fmt.Printf("✅ Imported %d project(s).\n", len(doc.Projects))
			if active, ok := s.Active(); ok {
				fmt.Printf("Now on '%s'.\n", active.Name)
			}
			return nil
		},
	}
}
