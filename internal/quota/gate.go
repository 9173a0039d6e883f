package quota

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/samerh/leadline/internal/models"
)

// Admission failure classes. All abort the request with no partial
// commit; none are fatal to the process.
var (
	// ErrQuotaExhausted means the user has no remaining quota today
	ErrQuotaExhausted = errors.New("daily contact limit reached")

	// ErrAbuseFlagged means consumption crossed the bot-detection threshold
	ErrAbuseFlagged = errors.New("suspicious activity detected")

	// ErrBatchOverflow means the enriched batch would exceed remaining quota
	ErrBatchOverflow = errors.New("search result would exceed daily contact limit")
)

// GateState tracks a request through the admission state machine
type GateState int

const (
	GatePending GateState = iota
	GatePreChecked
	GateEnriched
	GateCommitted
	GateRejectedQuota
	GateRejectedOverflow
)

// Enricher produces the enriched batch for a search query. The pipeline
// implements it; tests substitute fakes.
type Enricher interface {
	Enrich(query models.SearchQuery) ([]models.Business, error)
}

// Gate performs the two-phase admission check around a search: an
// optimistic pre-check before the enrichment call and a conclusive
// post-check once the true batch size is known. The provider, not the
// caller, decides how many results come back, so checking once up front
// is not enough.
type Gate struct {
	ledger       *Ledger
	dailyLimit   int
	botThreshold int
	logger       *log.Logger

	state GateState
}

// NewGate creates an admission gate over the given ledger.
// botThreshold must be below dailyLimit; config validation enforces it.
func NewGate(ledger *Ledger, dailyLimit, botThreshold int, logger *log.Logger) *Gate {
	return &Gate{
		ledger:       ledger,
		dailyLimit:   dailyLimit,
		botThreshold: botThreshold,
		logger:       logger,
		state:        GatePending,
	}
}

// State returns the gate's current position in the admission state machine
func (g *Gate) State() GateState {
	return g.state
}

// Run drives one search request through the full admission sequence:
// pre-check, enrichment, post-check, commit. On any rejection the batch
// is discarded and the ledger is left unchanged.
func (g *Gate) Run(userID string, query models.SearchQuery, enricher Enricher) (*models.SearchBatch, error) {
	g.state = GatePending

	// Pre-check: cheap reads only. A failure here means the search
	// provider is never invoked.
	allowed, remaining := g.ledger.Remaining(userID, g.dailyLimit)
	if !allowed {
		g.state = GateRejectedQuota
		if g.logger != nil {
			g.logger.Warn("quota exhausted", "user", userID, "limit", g.dailyLimit)
		}
		return nil, ErrQuotaExhausted
	}
	if g.ledger.Suspicious(userID, g.botThreshold) {
		g.state = GateRejectedQuota
		if g.logger != nil {
			g.logger.Warn("abuse flagged", "user", userID, "threshold", g.botThreshold)
		}
		return nil, ErrAbuseFlagged
	}
	g.state = GatePreChecked

	businesses, err := enricher.Enrich(query)
	if err != nil {
		return nil, fmt.Errorf("enrichment failed: %w", err)
	}
	g.state = GateEnriched

	// Post-check against the current remaining count. The enriched work
	// is deliberately wasted on overflow rather than risk under-counting.
	n := len(businesses)
	_, remaining = g.ledger.Remaining(userID, g.dailyLimit)
	if n > remaining {
		g.state = GateRejectedOverflow
		if g.logger != nil {
			g.logger.Warn("batch overflow", "user", userID, "batch", n, "remaining", remaining)
		}
		return nil, fmt.Errorf("%w: %d results, %d remaining", ErrBatchOverflow, n, remaining)
	}

	g.ledger.Commit(userID, n)
	g.state = GateCommitted
	if g.logger != nil {
		g.logger.Info("batch admitted", "user", userID, "contacts", n, "remaining", remaining-n)
	}

	return &models.SearchBatch{
		Query:      query,
		Businesses: businesses,
		FetchedAt:  g.ledger.now(),
	}, nil
}
