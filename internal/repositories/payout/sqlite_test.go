package payout

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSQLiteAddGetSettlementRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC)
	want := testSettlement("round-1", now)

	if err := store.AddSettlement(context.Background(), &AddSettlementInput{Settlement: want}); err != nil {
		t.Fatalf("add settlement: %v", err)
	}

	got, err := store.GetSettlement(context.Background(), &GetSettlementInput{RoundID: "round-1"})
	if err != nil {
		t.Fatalf("get settlement: %v", err)
	}
	assertSettlementEqual(t, want, got)
}

func TestSQLiteAddSettlementReturnsExistsOnDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	settlement := testSettlement("round-1", time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC))

	if err := store.AddSettlement(context.Background(), &AddSettlementInput{Settlement: settlement}); err != nil {
		t.Fatalf("add settlement: %v", err)
	}
	err := store.AddSettlement(context.Background(), &AddSettlementInput{Settlement: settlement})
	if !errors.Is(err, ErrSettlementExists) {
		t.Fatalf("duplicate error = %v, want %v", err, ErrSettlementExists)
	}

	got, err := store.GetSettlement(context.Background(), &GetSettlementInput{RoundID: "round-1"})
	if err != nil {
		t.Fatalf("get settlement: %v", err)
	}
	if len(got.Payouts) != len(settlement.Payouts) {
		t.Fatalf("payouts = %d, want %d", len(got.Payouts), len(settlement.Payouts))
	}
}

func TestSQLiteGetSettlementNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetSettlement(context.Background(), &GetSettlementInput{RoundID: "missing"})
	if !errors.Is(err, ErrSettlementNotFound) {
		t.Fatalf("get error = %v, want %v", err, ErrSettlementNotFound)
	}
}

func TestSQLiteAddSettlementRejectsHugeAmounts(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	settlement := testSettlement("round-1", time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC))
	settlement.Payouts[0].Amount = 1 << 63

	err := store.AddSettlement(context.Background(), &AddSettlementInput{Settlement: settlement})
	if !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("add error = %v, want %v", err, ErrAmountTooLarge)
	}
}

func TestSQLiteListSettlementsNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"round-1", "round-2", "round-3"} {
		settlement := testSettlement(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.AddSettlement(context.Background(), &AddSettlementInput{Settlement: settlement}); err != nil {
			t.Fatalf("add settlement %s: %v", id, err)
		}
	}

	output, err := store.ListSettlements(context.Background(), &ListSettlementsInput{})
	if err != nil {
		t.Fatalf("list settlements: %v", err)
	}
	if len(output.Settlements) != 3 {
		t.Fatalf("settlements = %d, want 3", len(output.Settlements))
	}
	if output.Settlements[0].RoundID != "round-3" || output.Settlements[2].RoundID != "round-1" {
		t.Fatalf("order = %s..%s, want round-3..round-1", output.Settlements[0].RoundID, output.Settlements[2].RoundID)
	}
	if len(output.Settlements[0].Payouts) != 3 {
		t.Fatalf("payouts = %d, want 3", len(output.Settlements[0].Payouts))
	}

	output, err = store.ListSettlements(context.Background(), &ListSettlementsInput{Limit: 1})
	if err != nil {
		t.Fatalf("list settlements: %v", err)
	}
	if len(output.Settlements) != 1 || output.Settlements[0].RoundID != "round-3" {
		t.Fatalf("limited list = %+v, want only round-3", output.Settlements)
	}
}

func TestSQLiteParticipantStats(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	base := time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"round-1", "round-2"} {
		settlement := testSettlement(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.AddSettlement(context.Background(), &AddSettlementInput{Settlement: settlement}); err != nil {
			t.Fatalf("add settlement %s: %v", id, err)
		}
	}

	stats, err := store.GetParticipantStats(context.Background(), &GetParticipantStatsInput{ParticipantID: "bob"})
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.RoundsWon != 2 || stats.TotalWon != 720 {
		t.Fatalf("stats = %+v, want 2 rounds and 720 won", stats)
	}

	stats, err = store.GetParticipantStats(context.Background(), &GetParticipantStatsInput{ParticipantID: "dust"})
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.RoundsWon != 0 || stats.TotalWon != 0 {
		t.Fatalf("stats = %+v, want zero", stats)
	}
}

func openTempStore(t *testing.T) *SQLite {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "payouts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
