// Package cli provides the command-line interface for the rating application.
package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vrating/internal/errors"
	"vrating/internal/models"
	"vrating/internal/store"
)

// addJournalCommands adds journal commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading journal management",
		Long:  "Record and review journal entries attached to your trades.",
	}

	cmd.AddCommand(newJournalAddCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))

	rootCmd.AddCommand(cmd)
}

func newJournalAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a journal entry",
		Long: `Add a journal entry, optionally attached to a trade.

Record what you saw, what you did, and what you would do differently.`,
		Example: `  vrating journal add --content "Forced the entry before confirmation" --mood anxious
  vrating journal add --trade 3f8a21 --content "Perfect setup, followed the plan" --tags discipline,breakout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return errors.ErrDatabaseError
			}

			content, _ := cmd.Flags().GetString("content")
			tradeID, _ := cmd.Flags().GetString("trade")
			mood, _ := cmd.Flags().GetString("mood")
			tagsStr, _ := cmd.Flags().GetString("tags")

			if strings.TrimSpace(content) == "" {
				return errors.NewValidationError("content", content, "content is required")
			}

			var tags []string
			for _, tag := range strings.Split(tagsStr, ",") {
				if trimmed := strings.TrimSpace(tag); trimmed != "" {
					tags = append(tags, trimmed)
				}
			}

			now := time.Now()
			entry := models.JournalEntry{
				TradeID:   tradeID,
				Date:      now,
				Content:   content,
				Tags:      tags,
				Mood:      mood,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := app.Store.SaveJournalEntry(ctx, &entry); err != nil {
				output.Error("Failed to save journal entry: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ Journal entry saved: %s", entry.ID)
			return nil
		},
	}

	cmd.Flags().String("content", "", "entry content (required)")
	cmd.Flags().String("trade", "", "trade ID this entry is attached to")
	cmd.Flags().String("mood", "", "mood at the time of writing")
	cmd.Flags().String("tags", "", "comma-separated tags")

	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show journal entries",
		Example: `  vrating journal show
  vrating journal show --trade 3f8a21
  vrating journal show --tag discipline --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return errors.ErrDatabaseError
			}

			filter := store.JournalFilter{}
			filter.TradeID, _ = cmd.Flags().GetString("trade")
			filter.Limit, _ = cmd.Flags().GetInt("limit")
			if tag, _ := cmd.Flags().GetString("tag"); tag != "" {
				filter.Tags = []string{tag}
			}

			entries, err := app.Store.GetJournal(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch journal entries: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entries)
			}

			if len(entries) == 0 {
				output.Info("No journal entries found.")
				return nil
			}

			table := NewTable(output, "Date", "Trade", "Mood", "Tags", "Content")
			for _, e := range entries {
				table.AddRow(
					FormatDate(e.Date),
					TruncateString(e.TradeID, 8),
					e.Mood,
					TruncateString(strings.Join(e.Tags, ","), 20),
					TruncateString(e.Content, 45),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("trade", "", "filter by trade ID")
	cmd.Flags().String("tag", "", "filter by tag")
	cmd.Flags().Int("limit", 50, "maximum number of entries to show")

	return cmd
}
