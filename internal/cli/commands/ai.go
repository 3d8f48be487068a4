package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/giftwise/giftwise-cli/internal/gemini"
	"github.com/giftwise/giftwise-cli/internal/stats"
)

const aiTimeout = 60 * time.Second

// NewAICommand creates all subcommands for the 'ai' command group.
func NewAICommand() *cli.Command {
	return &cli.Command{
		Name:  "ai",
		Usage: "Gemini-powered gift planning",
		Subcommands: []*cli.Command{
			aiIdeasCmd(),
			aiExtractCmd(),
			aiStrategyCmd(),
			aiAnalyzeCmd(),
			aiAlternativesCmd(),
			aiCardCmd(),
		},
	}
}

func aiIdeasCmd() *cli.Command {
	return &cli.Command{
		Name:      "ideas",
		Usage:     "Generate gift ideas for a recipient within their remaining budget",
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
			client, err := newAIClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
			defer cancel()

			fmt.Printf("🤖 Thinking about %s...\n", p.Name)
			left := stats.BudgetLeft(s.Data(), p)
			ideas, err := client.GenerateGiftIdeas(ctx, p, left)
			if err != nil {
				return fmt.Errorf("idea generation failed: %w", err)
			}
			if err := s.SetIdeas(p.ID, ideas); err != nil {
				return err
			}
			fmt.Printf("💡 %d ideas for %s:\n", len(ideas), p.Name)
			for i, idea := range ideas {
				fmt.Printf("  %d. %s (%s)\n", i+1, idea.Name, money(idea.EstimatedPrice))
				if idea.Reason != "" {
					fmt.Printf("     %s\n", idea.Reason)
				}
			}
			fmt.Println("\nPromote one with 'giftwise ideas promote <person> <number>'.")
			return nil
		},
	}
}

func aiExtractCmd() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract profile fields from free-form notes and merge them in",
		ArgsUsage: "[person] [notes...]",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: ai extract <person> <notes about them>")
			}
			s, err := openStore()
			if err != nil {
				return err
			}
			p, err := resolvePerson(s, c.Args().Get(0))
			if err != nil {
				return err
			}
			client, err := newAIClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
			defer cancel()

			notes := strings.Join(c.Args().Slice()[1:], " ")
			profile, err := client.ExtractProfile(ctx, notes)
			if err != nil {
				return fmt.Errorf("could not extract profile details, please try again: %w", err)
			}
			if err := s.MergeProfile(p.ID, *profile); err != nil {
				return err
			}
			fmt.Printf("✅ Profile updated for %s. Review it with 'giftwise person profile show %s'.\n", p.Name, p.Name)
			return nil
		},
	}
}

func aiStrategyCmd() *cli.Command {
	return &cli.Command{
		Name:      "strategy",
		Usage:     "Write a short gifting strategy for a recipient",
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
			client, err := newAIClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
			defer cancel()

			strategy, err := client.GenerateStrategy(ctx, p)
			if err != nil {
				slog.Warn("strategy generation failed", "person", p.Name, "error", err)
				strategy = gemini.FallbackStrategy
			}
			if err := s.SetStrategy(p.ID, strategy); err != nil {
				return err
			}
			fmt.Printf("🧠 Strategy for %s:\n%s\n", p.Name, strategy)
			return nil
		},
	}
}

func aiAnalyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Score how well a gift fits its recipient",
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
			p, ok := s.Person(g.PersonID)
			if !ok {
				return fmt.Errorf("gift %d has no recipient", g.ID)
			}
			client, err := newAIClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
			defer cancel()

			analysis, err := client.AnalyzeGiftMatch(ctx, p, g.Name)
			if err != nil {
				slog.Warn("gift analysis failed", "gift", g.Name, "error", err)
				analysis = gemini.FallbackAnalysis
			}
			if err := s.SetAnalysis(g.ID, analysis); err != nil {
				return err
			}
			fmt.Printf("🔍 '%s' for %s:\n%s\n", g.Name, p.Name, analysis)
			return nil
		},
	}
}

func aiAlternativesCmd() *cli.Command {
	return &cli.Command{
		Name:      "alternatives",
		Usage:     "Suggest cheaper or better-fitting alternatives for a gift",
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
			p, ok := s.Person(g.PersonID)
			if !ok {
				return fmt.Errorf("gift %d has no recipient", g.ID)
			}
			client, err := newAIClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
			defer cancel()

			alts, err := client.GenerateAlternatives(ctx, p, g.Name, g.Price)
			if err != nil {
				return fmt.Errorf("alternative generation failed: %w", err)
			}
			fmt.Printf("🔄 Alternatives to '%s' (%s):\n", g.Name, money(g.Price))
			for i, a := range alts {
				fmt.Printf("  %d. %s (%s, %s)\n", i+1, a.Name, money(a.EstimatedPrice), a.Category)
			}
			return nil
		},
	}
}

func aiCardCmd() *cli.Command {
	return &cli.Command{
		Name:      "card",
		Usage:     "Write a short card message to go with a gift",
		ArgsUsage: "[gift-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "copy", Usage: "Copy the message to the clipboard"},
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
			p, ok := s.Person(g.PersonID)
			if !ok {
				return fmt.Errorf("gift %d has no recipient", g.ID)
			}
			client, err := newAIClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), aiTimeout)
			defer cancel()

			msg, err := client.WriteCardMessage(ctx, p, g.Name)
			if err != nil {
				slog.Warn("card message failed", "gift", g.Name, "error", err)
				msg = gemini.FallbackCardMessage
			}
			fmt.Printf("💌 %s\n", msg)
			if c.Bool("copy") {
				if err := clipboard.WriteAll(msg); err != nil {
					slog.Warn("clipboard copy failed", "error", err)
				} else {
					fmt.Println("Copied to clipboard.")
				}
			}
			return nil
		},
	}
}
