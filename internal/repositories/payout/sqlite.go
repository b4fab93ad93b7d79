package payout

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/KirkDiggler/dicepool/internal/models"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaSQL string

// SQLite persists the settlement archive in a SQLite database.
type SQLite struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite settlement archive and ensures its schema exists.
func Open(path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AddSettlement inserts a settlement and its payouts in one transaction.
func (s *SQLite) AddSettlement(ctx context.Context, input *AddSettlementInput) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSettlement(input); err != nil {
		return err
	}
	settlement := input.Settlement

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO settlements (
		   round_id,
		   asset_ref,
		   winning_number,
		   pot,
		   winner_pot,
		   fee,
		   settled_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		settlement.RoundID,
		settlement.AssetRef,
		settlement.WinningNumber,
		int64(settlement.Pot),
		int64(settlement.WinnerPot),
		int64(settlement.Fee),
		toMillis(settlement.SettledAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSettlementExists
		}
		return fmt.Errorf("insert settlement: %w", err)
	}

	for i, p := range settlement.Payouts {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO payouts (
			   round_id,
			   position,
			   participant_id,
			   guess,
			   wagered,
			   amount
			 ) VALUES (?, ?, ?, ?, ?, ?)`,
			settlement.RoundID,
			i,
			p.ParticipantID,
			p.Guess,
			int64(p.Wagered),
			int64(p.Amount),
		)
		if err != nil {
			return fmt.Errorf("insert payout %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement: %w", err)
	}
	return nil
}

// GetSettlement loads one settlement with its payouts.
func (s *SQLite) GetSettlement(ctx context.Context, input *GetSettlementInput) (*models.Settlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input == nil || input.RoundID == "" {
		return nil, errors.New("input and round ID cannot be empty")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT round_id, asset_ref, winning_number, pot, winner_pot, fee, settled_at
		 FROM settlements
		 WHERE round_id = ?`,
		input.RoundID,
	)
	settlement, err := scanSettlement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettlementNotFound
		}
		return nil, fmt.Errorf("get settlement: %w", err)
	}

	if err := s.loadPayouts(ctx, settlement); err != nil {
		return nil, err
	}
	return settlement, nil
}

// ListSettlements returns settlements newest first.
func (s *SQLite) ListSettlements(ctx context.Context, input *ListSettlementsInput) (*ListSettlementsOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := int64(-1)
	if input != nil && input.Limit > 0 {
		limit = input.Limit
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT round_id, asset_ref, winning_number, pot, winner_pot, fee, settled_at
		 FROM settlements
		 ORDER BY settled_at DESC, round_id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list settlements: %w", err)
	}
	defer rows.Close()

	settlements := []*models.Settlement{}
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settlements: %w", err)
	}
	// Release the connection before issuing payout queries.
	_ = rows.Close()

	for _, settlement := range settlements {
		if err := s.loadPayouts(ctx, settlement); err != nil {
			return nil, err
		}
	}

	return &ListSettlementsOutput{
		Settlements: settlements,
	}, nil
}

// GetParticipantStats aggregates a participant's non-zero payouts.
func (s *SQLite) GetParticipantStats(ctx context.Context, input *GetParticipantStatsInput) (*models.ParticipantStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	var roundsWon, totalWon int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0)
		 FROM payouts
		 WHERE participant_id = ? AND amount > 0`,
		input.ParticipantID,
	).Scan(&roundsWon, &totalWon)
	if err != nil {
		return nil, fmt.Errorf("get participant stats: %w", err)
	}

	return &models.ParticipantStats{
		ParticipantID: input.ParticipantID,
		RoundsWon:     roundsWon,
		TotalWon:      uint64(totalWon),
	}, nil
}

func (s *SQLite) loadPayouts(ctx context.Context, settlement *models.Settlement) error {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT participant_id, guess, wagered, amount
		 FROM payouts
		 WHERE round_id = ?
		 ORDER BY position`,
		settlement.RoundID,
	)
	if err != nil {
		return fmt.Errorf("list payouts: %w", err)
	}
	defer rows.Close()

	settlement.Payouts = []*models.Payout{}
	for rows.Next() {
		var (
			p       models.Payout
			wagered int64
			amount  int64
		)
		if err := rows.Scan(&p.ParticipantID, &p.Guess, &wagered, &amount); err != nil {
			return fmt.Errorf("scan payout: %w", err)
		}
		p.Wagered = uint64(wagered)
		p.Amount = uint64(amount)
		settlement.Payouts = append(settlement.Payouts, &p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate payouts: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	var (
		settlement models.Settlement
		pot        int64
		winnerPot  int64
		fee        int64
		settledAt  int64
	)
	if err := row.Scan(
		&settlement.RoundID,
		&settlement.AssetRef,
		&settlement.WinningNumber,
		&pot,
		&winnerPot,
		&fee,
		&settledAt,
	); err != nil {
		return nil, err
	}
	settlement.Pot = uint64(pot)
	settlement.WinnerPot = uint64(winnerPot)
	settlement.Fee = uint64(fee)
	settlement.SettledAt = fromMillis(settledAt)
	return &settlement, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "settlements.round_id")
}

var _ Repository = (*SQLite)(nil)
