// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"vrating/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table for completed trades
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		symbol TEXT NOT NULL,
		market TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity REAL NOT NULL,
		entry_price REAL,
		exit_price REAL,
		pnl REAL,
		trade_date DATETIME,
		entry_time DATETIME,
		exit_time DATETIME,
		emotion_primary TEXT,
		emotion_secondary TEXT,
		emotion_intensity INTEGER,
		notes TEXT,
		strategy_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Journal entries
	CREATE TABLE IF NOT EXISTS journal (
		id TEXT PRIMARY KEY,
		trade_id TEXT,
		date DATETIME NOT NULL,
		content TEXT,
		tags TEXT,
		mood TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Strategies with their rule lists
	CREATE TABLE IF NOT EXISTS strategies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		rules TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
	CREATE INDEX IF NOT EXISTS idx_journal_date ON journal(date);
	CREATE INDEX IF NOT EXISTS idx_journal_trade ON journal(trade_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveTrade saves a trade record. An empty ID is assigned a fresh UUID.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}

	var emotionPrimary, emotionSecondary sql.NullString
	var emotionIntensity sql.NullInt64
	if trade.Emotion != nil {
		emotionPrimary = sql.NullString{String: string(trade.Emotion.Primary), Valid: true}
		if trade.Emotion.Secondary != "" {
			emotionSecondary = sql.NullString{String: string(trade.Emotion.Secondary), Valid: true}
		}
		emotionIntensity = sql.NullInt64{Int64: int64(trade.Emotion.Intensity), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (id, symbol, market, side, quantity, entry_price, exit_price, pnl, trade_date, entry_time, exit_time, emotion_primary, emotion_secondary, emotion_intensity, notes, strategy_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.Symbol, trade.Market, trade.Side, trade.Quantity, trade.EntryPrice, trade.ExitPrice, trade.PnL,
		trade.TradeDate, trade.EntryTime, trade.ExitTime, emotionPrimary, emotionSecondary, emotionIntensity,
		trade.Notes, trade.StrategyID)
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

const tradeColumns = "id, symbol, market, side, quantity, entry_price, exit_price, pnl, trade_date, entry_time, exit_time, emotion_primary, emotion_secondary, emotion_intensity, notes, strategy_id"

// GetTrades retrieves trades from the database.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, filter.Symbol)
	}
	if filter.Market != "" {
		query += " AND market = ?"
		args = append(args, filter.Market)
	}
	if filter.Side != "" {
		query += " AND side = ?"
		args = append(args, filter.Side)
	}
	if !filter.StartDate.IsZero() {
		query += " AND trade_date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND trade_date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY trade_date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	return trades, rows.Err()
}

// GetTradeByID retrieves a single trade by its ID.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	trade, err := scanTrade(rows)
	if err != nil {
		return nil, err
	}
	return &trade, rows.Err()
}

func scanTrade(rows *sql.Rows) (models.Trade, error) {
	var t models.Trade
	var emotionPrimary, emotionSecondary sql.NullString
	var emotionIntensity sql.NullInt64
	var entryPrice, exitPrice, pnl sql.NullFloat64

	if err := rows.Scan(&t.ID, &t.Symbol, &t.Market, &t.Side, &t.Quantity, &entryPrice, &exitPrice, &pnl,
		&t.TradeDate, &t.EntryTime, &t.ExitTime, &emotionPrimary, &emotionSecondary, &emotionIntensity,
		&t.Notes, &t.StrategyID); err != nil {
		return t, fmt.Errorf("failed to scan trade: %w", err)
	}

	t.EntryPrice = entryPrice.Float64
	t.ExitPrice = exitPrice.Float64
	t.PnL = pnl.Float64
	if emotionPrimary.Valid {
		t.Emotion = &models.EmotionalState{
			Primary:   models.Emotion(emotionPrimary.String),
			Secondary: models.Emotion(emotionSecondary.String),
			Intensity: int(emotionIntensity.Int64),
		}
	}
	return t, nil
}

// SaveJournalEntry saves a journal entry. An empty ID is assigned a
// fresh UUID.
func (s *SQLiteStore) SaveJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	tags, _ := json.Marshal(entry.Tags)
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO journal (id, trade_id, date, content, tags, mood, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.TradeID, entry.Date, entry.Content, string(tags), entry.Mood, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	return nil
}

// GetJournal retrieves journal entries from the database.
func (s *SQLiteStore) GetJournal(ctx context.Context, filter JournalFilter) ([]models.JournalEntry, error) {
	query := "SELECT id, trade_id, date, content, tags, mood, created_at, updated_at FROM journal WHERE 1=1"
	args := []interface{}{}

	if filter.TradeID != "" {
		query += " AND trade_id = ?"
		args = append(args, filter.TradeID)
	}
	if !filter.StartDate.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND date <= ?"
		args = append(args, filter.EndDate)
	}

	query += " ORDER BY date DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		var e models.JournalEntry
		var tagsJSON string
		if err := rows.Scan(&e.ID, &e.TradeID, &e.Date, &e.Content, &tagsJSON, &e.Mood, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		json.Unmarshal([]byte(tagsJSON), &e.Tags)
		if len(filter.Tags) > 0 && !hasAnyTag(e.Tags, filter.Tags) {
			continue
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// SaveStrategy saves a strategy definition.
func (s *SQLiteStore) SaveStrategy(ctx context.Context, strategy *models.Strategy) error {
	if strategy.ID == "" {
		strategy.ID = uuid.NewString()
	}
	rules, _ := json.Marshal(strategy.Rules)
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO strategies (id, name, description, rules)
		VALUES (?, ?, ?, ?)
	`, strategy.ID, strategy.Name, strategy.Description, string(rules))
	if err != nil {
		return fmt.Errorf("failed to save strategy: %w", err)
	}
	return nil
}

// GetStrategy retrieves a strategy by ID.
func (s *SQLiteStore) GetStrategy(ctx context.Context, id string) (*models.Strategy, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, description, rules FROM strategies WHERE id = ?", id)

	var st models.Strategy
	var rulesJSON string
	if err := row.Scan(&st.ID, &st.Name, &st.Description, &rulesJSON); err != nil {
		return nil, fmt.Errorf("failed to scan strategy: %w", err)
	}
	json.Unmarshal([]byte(rulesJSON), &st.Rules)
	return &st, nil
}

// ListStrategies retrieves all strategies.
func (s *SQLiteStore) ListStrategies(ctx context.Context) ([]models.Strategy, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, description, rules FROM strategies ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query strategies: %w", err)
	}
	defer rows.Close()

	var strategies []models.Strategy
	for rows.Next() {
		var st models.Strategy
		var rulesJSON string
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &rulesJSON); err != nil {
			return nil, fmt.Errorf("failed to scan strategy: %w", err)
		}
		json.Unmarshal([]byte(rulesJSON), &st.Rules)
		strategies = append(strategies, st)
	}

	return strategies, rows.Err()
}
