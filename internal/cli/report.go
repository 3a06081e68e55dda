// Package cli provides the command-line interface for the rating application.
package cli

import (
	"context"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"vrating/internal/errors"
	"vrating/internal/models"
	"vrating/internal/rating"
	"vrating/internal/store"
	"vrating/pkg/utils"
)

// addReportCommands adds performance report commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a performance report",
		Long:  "Generate a performance report for a period, including the overall rating.",
		Example: `  vrating report
  vrating report --period week
  vrating report --period month --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized. No trade data available.")
				return errors.ErrDatabaseError
			}

			periodStr, _ := cmd.Flags().GetString("period")
			period, err := utils.ParsePeriod(periodStr)
			if err != nil {
				return err
			}

			now := time.Now()
			startDate, endDate := period.Range(now)

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				StartDate: startDate,
				EndDate:   endDate,
			})
			if err != nil {
				output.Error("Failed to fetch trades: %v", err)
				return err
			}

			result := app.Calculator.Calculate(trades)
			label := rating.Describe(result.OverallScore)

			stats := computeReportStats(trades)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"period":       period.String(),
					"startDate":    startDate,
					"endDate":      endDate,
					"stats":        stats,
					"overallScore": result.OverallScore,
					"label":        label,
				})
			}

			output.Bold("Performance Report (%s)", period)
			if !startDate.IsZero() {
				output.Printf("  %s to %s\n", FormatDate(startDate), FormatDate(endDate))
			}
			output.Println()

			if len(trades) == 0 {
				output.Info("No trades found for this period.")
				return nil
			}

			output.Bold("Summary")
			output.Printf("  Total Trades:     %d\n", stats.TotalTrades)
			output.Printf("  Winning Trades:   %d (%.0f%%)\n", stats.Wins, stats.WinRate)
			output.Printf("  Losing Trades:    %d (%.0f%%)\n", stats.Losses, 100-stats.WinRate)
			output.Printf("  Gross Profit:     %s\n", output.Green(utils.FormatCurrency(currencySymbol, stats.GrossProfit)))
			output.Printf("  Gross Loss:       %s\n", output.Red(utils.FormatCurrency(currencySymbol, stats.GrossLoss)))
			output.Printf("  Net P&L:          %s\n", output.FormatPnL(stats.NetPnL))
			output.Println()

			output.Bold("Performance Metrics")
			output.Printf("  Win Rate:         %.1f%%\n", stats.WinRate)
			output.Printf("  Profit Factor:    %.2f\n", stats.ProfitFactor)
			output.Printf("  Avg Win:          %s\n", utils.FormatCurrency(currencySymbol, stats.AvgWin))
			output.Printf("  Avg Loss:         %s\n", utils.FormatCurrency(currencySymbol, stats.AvgLoss))
			output.Printf("  Largest Win:      %s\n", utils.FormatCurrency(currencySymbol, stats.LargestWin))
			output.Printf("  Largest Loss:     %s\n", utils.FormatCurrency(currencySymbol, stats.LargestLoss))
			output.Printf("  Expectancy:       %s\n", utils.FormatCurrency(currencySymbol, stats.Expectancy))
			output.Println()

			if len(stats.BySymbol) > 0 {
				output.Bold("By Symbol")
				for _, gs := range stats.BySymbol {
					output.Printf("  %-12s %d trades  %s  %.0f%% win\n",
						gs.Key, gs.Trades, output.FormatPnL(gs.PnL), gs.WinRate)
				}
				output.Println()
			}

			if len(stats.ByStrategy) > 0 {
				output.Bold("By Strategy")
				for _, gs := range stats.ByStrategy {
					output.Printf("  %-12s %d trades  %s  %.0f%% win\n",
						gs.Key, gs.Trades, output.FormatPnL(gs.PnL), gs.WinRate)
				}
				output.Println()
			}

			output.Bold("Rating")
			output.Printf("  Score: %s / 10.00  %s\n", output.FormatScore(result.OverallScore), FormatStars(result.OverallScore))
			output.Printf("  %s\n", label)

			return nil
		},
	}

	cmd.Flags().String("period", "all", "report period (today, week, month, quarter, year, all)")

	rootCmd.AddCommand(cmd)
}

// GroupStats holds per-symbol or per-strategy statistics.
type GroupStats struct {
	Key     string  `json:"key"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	PnL     float64 `json:"pnl"`
	WinRate float64 `json:"winRate"`
}

// ReportStats holds aggregate statistics for a report period.
type ReportStats struct {
	TotalTrades  int          `json:"totalTrades"`
	Wins         int          `json:"wins"`
	Losses       int          `json:"losses"`
	WinRate      float64      `json:"winRate"`
	GrossProfit  float64      `json:"grossProfit"`
	GrossLoss    float64      `json:"grossLoss"`
	NetPnL       float64      `json:"netPnl"`
	ProfitFactor float64      `json:"profitFactor"`
	AvgWin       float64      `json:"avgWin"`
	AvgLoss      float64      `json:"avgLoss"`
	LargestWin   float64      `json:"largestWin"`
	LargestLoss  float64      `json:"largestLoss"`
	Expectancy   float64      `json:"expectancy"`
	BySymbol     []GroupStats `json:"bySymbol"`
	ByStrategy   []GroupStats `json:"byStrategy"`
}

func computeReportStats(trades []models.Trade) ReportStats {
	stats := ReportStats{TotalTrades: len(trades)}

	symbolGroups := make(map[string]*GroupStats)
	strategyGroups := make(map[string]*GroupStats)

	for _, t := range trades {
		if t.PnL > 0 {
			stats.Wins++
			stats.GrossProfit += t.PnL
			if t.PnL > stats.LargestWin {
				stats.LargestWin = t.PnL
			}
		} else {
			stats.Losses++
			stats.GrossLoss += t.PnL
			if t.PnL < stats.LargestLoss {
				stats.LargestLoss = t.PnL
			}
		}

		addToGroup(symbolGroups, t.Symbol, t.PnL)
		strategy := t.StrategyID
		if strategy == "" {
			strategy = "Manual"
		}
		addToGroup(strategyGroups, strategy, t.PnL)
	}

	stats.NetPnL = stats.GrossProfit + stats.GrossLoss
	if stats.TotalTrades > 0 {
		stats.WinRate = float64(stats.Wins) / float64(stats.TotalTrades) * 100
		stats.Expectancy = stats.NetPnL / float64(stats.TotalTrades)
	}
	if stats.Wins > 0 {
		stats.AvgWin = stats.GrossProfit / float64(stats.Wins)
	}
	if stats.Losses > 0 {
		stats.AvgLoss = stats.GrossLoss / float64(stats.Losses)
	}
	if stats.GrossLoss != 0 {
		stats.ProfitFactor = stats.GrossProfit / (-stats.GrossLoss)
	}

	stats.BySymbol = sortGroups(symbolGroups)
	stats.ByStrategy = sortGroups(strategyGroups)

	return stats
}

func addToGroup(groups map[string]*GroupStats, key string, pnl float64) {
	gs, ok := groups[key]
	if !ok {
		gs = &GroupStats{Key: key}
		groups[key] = gs
	}
	gs.Trades++
	gs.PnL += pnl
	if pnl > 0 {
		gs.Wins++
	}
	gs.WinRate = float64(gs.Wins) / float64(gs.Trades) * 100
}

func sortGroups(groups map[string]*GroupStats) []GroupStats {
	result := make([]GroupStats, 0, len(groups))
	for _, gs := range groups {
		result = append(result, *gs)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].PnL != result[j].PnL {
			return result[i].PnL > result[j].PnL
		}
		return result[i].Key < result[j].Key
	})
	return result
}
