// Package cli provides the command-line interface for the rating application.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"vrating/internal/errors"
	"vrating/internal/logging"
	"vrating/internal/models"
	"vrating/internal/store"
	"vrating/pkg/utils"
)

// addTradeCommands adds trade management commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Trade record management",
		Long:  "Record, list, and import completed trades.",
	}

	cmd.AddCommand(newTradesAddCmd(app))
	cmd.AddCommand(newTradesListCmd(app))
	cmd.AddCommand(newTradesImportCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradesAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a completed trade",
		Example: `  vrating trades add --symbol AAPL --side BUY --qty 100 --entry 182.50 --exit 185.10
  vrating trades add --symbol BTCUSDT --market CRYPTO --side SELL --qty 0.5 --pnl -120.40 --emotion FOMO --intensity 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return errors.ErrDatabaseError
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			market, _ := cmd.Flags().GetString("market")
			side, _ := cmd.Flags().GetString("side")
			qty, _ := cmd.Flags().GetFloat64("qty")
			entry, _ := cmd.Flags().GetFloat64("entry")
			exit, _ := cmd.Flags().GetFloat64("exit")
			pnl, _ := cmd.Flags().GetFloat64("pnl")
			dateStr, _ := cmd.Flags().GetString("date")
			emotion, _ := cmd.Flags().GetString("emotion")
			intensity, _ := cmd.Flags().GetInt("intensity")
			notes, _ := cmd.Flags().GetString("notes")
			strategy, _ := cmd.Flags().GetString("strategy")

			if symbol == "" {
				return errors.NewValidationError("symbol", symbol, "symbol is required")
			}
			if qty <= 0 {
				return errors.NewValidationError("qty", qty, "quantity must be positive")
			}
			side = strings.ToUpper(side)
			if side != string(models.OrderSideBuy) && side != string(models.OrderSideSell) {
				return errors.NewValidationError("side", side, "side must be BUY or SELL")
			}

			tradeDate := time.Now()
			if dateStr != "" {
				parsed, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return errors.NewValidationError("date", dateStr, "expected YYYY-MM-DD")
				}
				tradeDate = parsed
			}

			// Derive P&L from prices when not given explicitly
			if !cmd.Flags().Changed("pnl") && entry > 0 && exit > 0 {
				if side == string(models.OrderSideBuy) {
					pnl = (exit - entry) * qty
				} else {
					pnl = (entry - exit) * qty
				}
			}

			trade := models.Trade{
				Symbol:     strings.ToUpper(symbol),
				Market:     models.Market(strings.ToUpper(market)),
				Side:       models.OrderSide(side),
				Quantity:   qty,
				EntryPrice: entry,
				ExitPrice:  exit,
				PnL:        pnl,
				TradeDate:  tradeDate,
				Notes:      notes,
				StrategyID: strategy,
			}
			if emotion != "" {
				trade.Emotion = &models.EmotionalState{
					Primary:   models.Emotion(strings.ToUpper(emotion)),
					Intensity: intensity,
				}
			}

			if err := app.Store.SaveTrade(ctx, &trade); err != nil {
				output.Error("Failed to save trade: %v", err)
				return err
			}

			logging.LogTrade(app.Logger, trade.ID, trade.Symbol, string(trade.Side), trade.Quantity, trade.PnL)

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade recorded: %s", trade.ID)
			output.Printf("  %s %s x%.4g  P&L: %s\n", trade.Symbol, trade.Side, trade.Quantity, output.FormatPnL(trade.PnL))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "traded symbol (required)")
	cmd.Flags().String("market", "STOCK", "market (STOCK, CRYPTO, FOREX, FUTURES)")
	cmd.Flags().String("side", "BUY", "side (BUY, SELL)")
	cmd.Flags().Float64("qty", 0, "quantity (required)")
	cmd.Flags().Float64("entry", 0, "entry price")
	cmd.Flags().Float64("exit", 0, "exit price")
	cmd.Flags().Float64("pnl", 0, "realized P&L (derived from prices if omitted)")
	cmd.Flags().String("date", "", "trade date (YYYY-MM-DD, default today)")
	cmd.Flags().String("emotion", "", "primary emotion tag (e.g. DISCIPLINE, FOMO)")
	cmd.Flags().Int("intensity", 5, "emotion intensity (1-10)")
	cmd.Flags().String("notes", "", "trade notes")
	cmd.Flags().String("strategy", "", "strategy ID")

	return cmd
}

func newTradesListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return errors.ErrDatabaseError
			}

			filter := store.TradeFilter{}
			filter.Symbol, _ = cmd.Flags().GetString("symbol")
			filter.Limit, _ = cmd.Flags().GetInt("limit")
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

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Symbol", "Side", "Qty", "P&L", "Emotion", "Strategy")
			var totalPnL float64
			for _, t := range trades {
				totalPnL += t.PnL
				emotion := ""
				if t.Emotion != nil {
					emotion = string(t.Emotion.Primary)
				}
				table.AddRow(
					TruncateString(t.ID, 8),
					FormatDate(t.TradeDate),
					t.Symbol,
					string(t.Side),
					fmt.Sprintf("%.4g", t.Quantity),
					output.FormatPnL(t.PnL),
					emotion,
					TruncateString(t.StrategyID, 15),
				)
			}
			table.Render()
			output.Println()
			output.Printf("  %d trades, total P&L: %s\n", len(trades), output.FormatPnL(totalPnL))
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("period", "", "filter by period (today, week, month, quarter, year, all)")
	cmd.Flags().Int("limit", 50, "maximum number of trades to show")

	return cmd
}

// csvTrade is the CSV import row shape.
type csvTrade struct {
	Symbol     string  `csv:"symbol"`
	Market     string  `csv:"market"`
	Side       string  `csv:"side"`
	Quantity   float64 `csv:"quantity"`
	EntryPrice float64 `csv:"entry_price"`
	ExitPrice  float64 `csv:"exit_price"`
	PnL        float64 `csv:"pnl"`
	TradeDate  string  `csv:"trade_date"`
	Emotion    string  `csv:"emotion"`
	Intensity  int     `csv:"intensity"`
	Notes      string  `csv:"notes"`
	StrategyID string  `csv:"strategy_id"`
}

func newTradesImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long: `Import trades from a CSV file.

Expected columns: symbol, market, side, quantity, entry_price,
exit_price, pnl, trade_date (YYYY-MM-DD), emotion, intensity, notes,
strategy_id. Rows with no symbol or non-positive quantity are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			if app.Store == nil {
				output.Warning("Store not initialized.")
				return errors.ErrDatabaseError
			}

			path := args[0]
			file, err := os.Open(path)
			if err != nil {
				return errors.Wrapf(err, "opening %s", path)
			}
			defer file.Close()

			var rows []*csvTrade
			if err := gocsv.UnmarshalFile(file, &rows); err != nil {
				return errors.NewImportError(path, 0, "failed to parse CSV", err)
			}

			retryCfg := utils.DefaultRetryConfig()
			imported, skipped := 0, 0
			for i, row := range rows {
				if strings.TrimSpace(row.Symbol) == "" || row.Quantity <= 0 {
					skipped++
					continue
				}

				tradeDate := time.Now()
				if row.TradeDate != "" {
					parsed, err := time.Parse("2006-01-02", row.TradeDate)
					if err != nil {
						app.Logger.Warn().Int("line", i+2).Str("date", row.TradeDate).Msg("Skipping row with bad date")
						skipped++
						continue
					}
					tradeDate = parsed
				}

				trade := models.Trade{
					Symbol:     strings.ToUpper(row.Symbol),
					Market:     models.Market(strings.ToUpper(row.Market)),
					Side:       models.OrderSide(strings.ToUpper(row.Side)),
					Quantity:   row.Quantity,
					EntryPrice: row.EntryPrice,
					ExitPrice:  row.ExitPrice,
					PnL:        row.PnL,
					TradeDate:  tradeDate,
					Notes:      row.Notes,
					StrategyID: row.StrategyID,
				}
				if row.Emotion != "" {
					trade.Emotion = &models.EmotionalState{
						Primary:   models.Emotion(strings.ToUpper(row.Emotion)),
						Intensity: row.Intensity,
					}
				}

				saveErr := utils.Retry(ctx, retryCfg, func() error {
					return app.Store.SaveTrade(ctx, &trade)
				})
				if saveErr != nil {
					logging.LogImport(app.Logger, path, imported, skipped, saveErr)
					return errors.NewImportError(path, i+2, "failed to save trade", saveErr)
				}
				imported++

				if !output.IsJSON() && len(rows) > 10 {
					output.Progress(imported+skipped, len(rows), "Importing")
				}
			}

			logging.LogImport(app.Logger, path, imported, skipped, nil)

			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": imported, "skipped": skipped})
			}
			output.Success("✓ Imported %d trades (%d skipped)", imported, skipped)
			return nil
		},
	}
}
