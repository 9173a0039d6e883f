package quota

import (
	"errors"
	"testing"

	"github.com/samerh/leadline/internal/models"
)

// fakeEnricher returns a fixed batch and records whether it was invoked
type fakeEnricher struct {
	batch  []models.Business
	err    error
	called int
}

func (f *fakeEnricher) Enrich(query models.SearchQuery) ([]models.Business, error) {
	f.called++
	return f.batch, f.err
}

func makeBatch(n int) []models.Business {
	businesses := make([]models.Business, n)
	for i := range businesses {
		businesses[i] = models.Business{PlaceID: "place", Name: "Business"}
	}
	return businesses
}

var testQuery = models.SearchQuery{Location: "New York, NY", Category: "restaurant", RadiusMeters: 3000}

// TestGateCommitsAdmittedBatch walks the happy path through the state machine
func TestGateCommitsAdmittedBatch(t *testing.T) {
	ledger := NewLedger()
	gate := NewGate(ledger, 50, 30, nil)
	enricher := &fakeEnricher{batch: makeBatch(10)}

	batch, err := gate.Run("abc123", testQuery, enricher)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gate.State() != GateCommitted {
		t.Errorf("state = %v, want GateCommitted", gate.State())
	}
	if batch.Size() != 10 {
		t.Errorf("batch size = %d, want 10", batch.Size())
	}
	if got := ledger.Consumed("abc123"); got != 10 {
		t.Errorf("Consumed() = %d, want 10", got)
	}
	if _, remaining := ledger.Remaining("abc123", 50); remaining != 40 {
		t.Errorf("remaining = %d, want 40", remaining)
	}
}

// TestGateRejectsOnExhaustedQuota verifies the pipeline is never invoked
// once the daily limit is spent
func TestGateRejectsOnExhaustedQuota(t *testing.T) {
	ledger := NewLedger()
	ledger.Commit("abc123", 50)
	gate := NewGate(ledger, 50, 30, nil)
	enricher := &fakeEnricher{batch: makeBatch(5)}

	_, err := gate.Run("abc123", testQuery, enricher)
	if !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("Run() error = %v, want ErrQuotaExhausted", err)
	}
	if gate.State() != GateRejectedQuota {
		t.Errorf("state = %v, want GateRejectedQuota", gate.State())
	}
	if enricher.called != 0 {
		t.Errorf("enricher called %d times, want 0", enricher.called)
	}
}

// TestGateRejectsFlaggedUser verifies abuse detection blocks before enrichment
func TestGateRejectsFlaggedUser(t *testing.T) {
	ledger := NewLedger()
	ledger.Commit("abc123", 35) // above the bot threshold, below the limit
	gate := NewGate(ledger, 50, 30, nil)
	enricher := &fakeEnricher{batch: makeBatch(5)}

	_, err := gate.Run("abc123", testQuery, enricher)
	if !errors.Is(err, ErrAbuseFlagged) {
		t.Fatalf("Run() error = %v, want ErrAbuseFlagged", err)
	}
	if enricher.called != 0 {
		t.Errorf("enricher called %d times, want 0", enricher.called)
	}
	if got := ledger.Consumed("abc123"); got != 35 {
		t.Errorf("Consumed() = %d, ledger must be unchanged", got)
	}
}

// TestGateRejectsOverflowBatch reproduces the two-search scenario: a 10-contact
// search commits, then a 45-contact result must be discarded uncommitted
func TestGateRejectsOverflowBatch(t *testing.T) {
	ledger := NewLedger()
	gate := NewGate(ledger, 50, 30, nil)

	if _, err := gate.Run("abc123", testQuery, &fakeEnricher{batch: makeBatch(10)}); err != nil {
		t.Fatalf("first search: %v", err)
	}

	second := &fakeEnricher{batch: makeBatch(45)}
	_, err := gate.Run("abc123", testQuery, second)
	if !errors.Is(err, ErrBatchOverflow) {
		t.Fatalf("Run() error = %v, want ErrBatchOverflow", err)
	}
	if gate.State() != GateRejectedOverflow {
		t.Errorf("state = %v, want GateRejectedOverflow", gate.State())
	}
	if second.called != 1 {
		t.Errorf("enricher called %d times, want 1 (post-check happens after enrichment)", second.called)
	}
	if got := ledger.Consumed("abc123"); got != 10 {
		t.Errorf("Consumed() = %d after overflow, want 10 (no partial commit)", got)
	}
}

// TestGateExactFitCommits verifies a batch equal to the remaining quota is admitted
func TestGateExactFitCommits(t *testing.T) {
	ledger := NewLedger()
	ledger.Commit("abc123", 20)
	gate := NewGate(ledger, 50, 45, nil)

	batch, err := gate.Run("abc123", testQuery, &fakeEnricher{batch: makeBatch(30)})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if batch.Size() != 30 {
		t.Errorf("batch size = %d, want 30", batch.Size())
	}
	if got := ledger.Consumed("abc123"); got != 50 {
		t.Errorf("Consumed() = %d, want 50", got)
	}
}

// TestGatePropagatesEnrichmentError verifies pipeline failures surface
// without touching the ledger
func TestGatePropagatesEnrichmentError(t *testing.T) {
	ledger := NewLedger()
	gate := NewGate(ledger, 50, 30, nil)
	enricher := &fakeEnricher{err: errors.New("geocoder unreachable")}

	_, err := gate.Run("abc123", testQuery, enricher)
	if err == nil {
		t.Fatal("expected error from failed enrichment")
	}
	if got := ledger.Consumed("abc123"); got != 0 {
		t.Errorf("Consumed() = %d after enrichment failure, want 0", got)
	}
}

// TestGateEmptyBatchCommitsZero verifies an empty result is admitted
// without consuming quota
func TestGateEmptyBatchCommitsZero(t *testing.T) {
	ledger := NewLedger()
	gate := NewGate(ledger, 50, 30, nil)

	batch, err := gate.Run("abc123", testQuery, &fakeEnricher{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if batch.Size() != 0 {
		t.Errorf("batch size = %d, want 0", batch.Size())
	}
	if got := ledger.Consumed("abc123"); got != 0 {
		t.Errorf("Consumed() = %d, want 0", got)
	}
}
