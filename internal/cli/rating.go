// Package cli provides the command-line interface for the rating application.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vrating/internal/errors"
	"vrating/internal/logging"
	"vrating/internal/rating"
	"vrating/internal/store"
	"vrating/pkg/utils"
)

// addRatingCommands adds rating commands.
func addRatingCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "rating",
		Short: "Calculate your trading performance rating",
		Long: `Calculate the overall performance rating from recorded trades.

The rating is a 1.0-10.0 score weighted across five categories:
profitability, risk management, consistency, emotional discipline,
and journaling adherence.`,
		Example: `  vrating rating
  vrating rating --period month
  vrating rating --symbol AAPL --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No trade data available.")
				return errors.ErrDatabaseError
			}

			filter := store.TradeFilter{}
			if symbol, _ := cmd.Flags().GetString("symbol"); symbol != "" {
				filter.Symbol = symbol
			}
			if periodStr, _ := cmd.Flags().GetString("period"); periodStr != "" {
				period, err := utils.ParsePeriod(periodStr)
				if err != nil {
					return err
				}
				filter.StartDate, filter.EndDate = period.Range(time.Now())
			}

			trades, err := app.Store.GetTrades(ctx, filter)
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			start := time.Now()
			result := app.Calculator.Calculate(trades)
			label := rating.Describe(result.OverallScore)
			logging.LogRating(app.Logger, result.OverallScore, label, len(trades), time.Since(start))

			if output.IsJSON() {
				return output.JSON(ratingPayload(result, label, len(trades)))
			}

			renderRating(output, result, label, len(trades))
			return nil
		},
	}

	cmd.Flags().String("period", "", "limit to a period (today, week, month, quarter, year, all)")
	cmd.Flags().String("symbol", "", "limit to a symbol")

	cmd.AddCommand(newRatingTradeCmd(app))
	rootCmd.AddCommand(cmd)
}

func newRatingTradeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trade <trade-id>",
		Short: "Rate a single trade",
		Long:  "Calculate the rating for a single recorded trade.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No trade data available.")
				return errors.ErrDatabaseError
			}

			trade, err := app.Store.GetTradeByID(ctx, args[0])
			if err != nil {
				output.Error("Trade not found: %s", args[0])
				return errors.Wrapf(errors.ErrTradeNotFound, "id %s", args[0])
			}

			result := app.Calculator.CalculateSingle(*trade)
			label := rating.Describe(result.OverallScore)

			if output.IsJSON() {
				return output.JSON(ratingPayload(result, label, 1))
			}

			output.Bold("Trade: %s %s %s", trade.Symbol, trade.Side, FormatDate(trade.TradeDate))
			output.Printf("  P&L: %s\n\n", output.FormatPnL(trade.PnL))
			renderRating(output, result, label, 1)
			return nil
		},
	}
}

// ratingPayload shapes a result for JSON output.
func ratingPayload(result rating.Result, label string, tradeCount int) map[string]interface{} {
	return map[string]interface{}{
		"overallScore":   result.OverallScore,
		"label":          label,
		"tradeCount":     tradeCount,
		"categoryScores": result.Categories,
		"adjustments":    result.Adjustments,
		"calculatedAt":   result.CalculatedAt,
	}
}

// renderRating renders a rating result for human consumption.
func renderRating(output *Output, result rating.Result, label string, tradeCount int) {
	scoreLine := fmt.Sprintf("Score: %s / 10.00   %s", output.FormatScore(result.OverallScore), FormatStars(result.OverallScore))
	output.Box("Trading Performance Rating", []string{
		scoreLine,
		label,
		fmt.Sprintf("Based on %d trades", tradeCount),
	})
	output.Println()

	output.Bold("Categories")
	table := NewTable(output, "Category", "Score", "Weight", "Contribution", "")
	for _, cat := range result.Categories {
		table.AddRow(
			categoryLabel(cat.Name),
			output.FormatScore(cat.Score),
			FormatWeight(cat.Weight),
			utils.FormatScore(cat.Contribution),
			FormatGauge(cat.Score, 20),
		)
	}
	table.Render()
	output.Println()

	for _, cat := range result.Categories {
		if len(cat.KeyMetrics) == 0 {
			continue
		}
		output.Bold("%s", categoryLabel(cat.Name))
		for _, m := range cat.KeyMetrics {
			output.Printf("  %s\n", m)
		}
	}
	output.Println()

	if len(result.Adjustments) > 0 {
		output.Bold("Adjustments")
		for _, adj := range result.Adjustments {
			sign := "+"
			if adj.Value < 0 {
				sign = ""
			}
			line := fmt.Sprintf("  %s%.2f  %s", sign, adj.Value, adj.Description)
			if adj.Type == rating.AdjustmentBonus {
				output.Success("%s", line)
			} else {
				output.Warning("%s", line)
			}
		}
		output.Println()
	}
}

// categoryLabel maps internal category names to display names.
func categoryLabel(name rating.Category) string {
	switch name {
	case rating.Profitability:
		return "Profitability"
	case rating.RiskManagement:
		return "Risk Management"
	case rating.Consistency:
		return "Consistency"
	case rating.EmotionalDiscipline:
		return "Emotional Discipline"
	case rating.JournalingAdherence:
		return "Journaling Adherence"
	default:
		return string(name)
	}
}
