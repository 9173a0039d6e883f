package quota

import (
	"sync"
	"time"
)

const dayKeyFormat = "2006-01-02"

// Ledger tracks contacts consumed per user per calendar day. It lives for
// the process lifetime only; entries for past days are retained but never
// read again after the local date rolls over.
type Ledger struct {
	mu   sync.Mutex
	days map[string]map[string]int // day key -> user id -> contacts consumed
	now  func() time.Time
}

// NewLedger creates an empty in-memory quota ledger
func NewLedger() *Ledger {
	return &Ledger{
		days: make(map[string]map[string]int),
		now:  time.Now,
	}
}

// dayKey returns the partition key for the current local date
func (l *Ledger) dayKey() string {
	return l.now().Format(dayKeyFormat)
}

// Consumed returns the number of contacts the user has consumed today.
// A missing entry means zero; nothing is written.
func (l *Ledger) Consumed(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.days[l.dayKey()][userID]
}

// Remaining reports whether the user has any quota left today and how
// much. Pure read; never mutates the ledger.
func (l *Ledger) Remaining(userID string, dailyLimit int) (allowed bool, remaining int) {
	remaining = dailyLimit - l.Consumed(userID)
	return remaining > 0, remaining
}

// Commit adds amount to the user's consumption for today. This is the
// only mutator; there is no decrement or refund, so callers must finish
// all admission checks before committing.
func (l *Ledger) Commit(userID string, amount int) {
	if amount < 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key := l.dayKey()
	if l.days[key] == nil {
		l.days[key] = make(map[string]int)
	}
	l.days[key][userID] += amount
}

// Suspicious flags bot-like behavior: true once today's consumption has
// crossed the threshold. The signal is post-hoc -- it shares the commit
// counter, so the request that crosses the threshold is never itself
// blocked, only later ones. It clears implicitly at day rollover.
func (l *Ledger) Suspicious(userID string, threshold int) bool {
	return l.Consumed(userID) > threshold
}
