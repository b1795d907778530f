package assessment

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is a persisted assessment result. Only the outcome and the raw
// answers are stored; the profile itself is re-derived from the static
// table on read so table changes propagate without migrations.
type Record struct {
	ID                 string  `json:"id"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Score              int     `json:"score"`
	Level              string  `json:"level"`
	TradingStrategy    string  `json:"trading_strategy"`
	AutomatedTrading   bool    `json:"automated_trading"`
	MaxDailyTrades     int     `json:"max_daily_trades"`
	StopLossPercentage float64 `json:"stop_loss_percentage"`
	Answers            Answers `json:"answers"`
	CreatedAt          int64   `json:"created_at"` // Unix timestamp
}

// Repository provides persistence for assessment results.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new assessment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores a completed assessment and returns the stored record.
func (r *Repository) Save(req Request, score int, profile Profile) (Record, error) {
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return Record{}, fmt.Errorf("failed to marshal answers: %w", err)
	}

	rec := Record{
		ID:                 uuid.New().String(),
		FirstName:          profile.FirstName,
		LastName:           profile.LastName,
		Score:              score,
		Level:              profile.Level.Name(),
		TradingStrategy:    profile.TradingStrategy,
		AutomatedTrading:   profile.AutomatedTrading,
		MaxDailyTrades:     profile.MaxDailyTrades,
		StopLossPercentage: profile.StopLossPercentage,
		Answers:            req.Answers,
		CreatedAt:          time.Now().Unix(),
	}

	_, err = r.db.Exec(`
		INSERT INTO assessments (
			id, first_name, last_name, score, level,
			trading_strategy, automated_trading, max_daily_trades,
			stop_loss_percentage, answers, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.FirstName, rec.LastName, rec.Score, rec.Level,
		rec.TradingStrategy, boolToInt(rec.AutomatedTrading), rec.MaxDailyTrades,
		rec.StopLossPercentage, string(answersJSON), rec.CreatedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert assessment: %w", err)
	}

	return rec, nil
}

// GetByID returns a stored assessment. Returns sql.ErrNoRows if not found.
func (r *Repository) GetByID(id string) (Record, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT id, first_name, last_name, score, level,
		       trading_strategy, automated_trading, max_daily_trades,
		       stop_loss_percentage, answers, created_at
		FROM assessments WHERE id = ?`, id))
}

// Latest returns the most recently created assessment.
// Returns sql.ErrNoRows if no assessments exist.
func (r *Repository) Latest() (Record, error) {
	return r.scanOne(r.db.QueryRow(`
		SELECT id, first_name, last_name, score, level,
		       trading_strategy, automated_trading, max_daily_trades,
		       stop_loss_percentage, answers, created_at
		FROM assessments ORDER BY created_at DESC, id DESC LIMIT 1`))
}

func (r *Repository) scanOne(row *sql.Row) (Record, error) {
	var rec Record
	var automated int
	var answersJSON string

	err := row.Scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.Score, &rec.Level,
		&rec.TradingStrategy, &automated, &rec.MaxDailyTrades,
		&rec.StopLossPercentage, &answersJSON, &rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	rec.AutomatedTrading = automated != 0

	if err := json.Unmarshal([]byte(answersJSON), &rec.Answers); err != nil {
		return Record{}, fmt.Errorf("failed to unmarshal answers for %s: %w", rec.ID, err)
	}

	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
