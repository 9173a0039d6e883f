package quota

import (
	"testing"
	"time"
)

// TestRemainingIsPure verifies repeated reads never mutate the ledger
func TestRemainingIsPure(t *testing.T) {
	ledger := NewLedger()
	ledger.Commit("abc123", 10)

	for i := 0; i < 5; i++ {
		allowed, remaining := ledger.Remaining("abc123", 50)
		if !allowed {
			t.Fatalf("read %d: expected allowed", i)
		}
		if remaining != 40 {
			t.Fatalf("read %d: remaining = %d, want 40", i, remaining)
		}
	}

	if got := ledger.Consumed("abc123"); got != 10 {
		t.Errorf("Consumed() = %d after reads, want 10", got)
	}
}

// TestCommitAccumulates verifies consumption only ever grows within a day
func TestCommitAccumulates(t *testing.T) {
	ledger := NewLedger()

	amounts := []int{5, 0, 12, 3}
	want := 0
	for _, amount := range amounts {
		ledger.Commit("abc123", amount)
		want += amount
		if got := ledger.Consumed("abc123"); got != want {
			t.Fatalf("after Commit(%d): Consumed() = %d, want %d", amount, got, want)
		}
	}

	// Negative amounts are ignored, never subtracted
	ledger.Commit("abc123", -7)
	if got := ledger.Consumed("abc123"); got != want {
		t.Errorf("Consumed() = %d after negative commit, want %d", got, want)
	}
}

// TestAbsenceMeansZero verifies unknown users and fresh days read as zero
func TestAbsenceMeansZero(t *testing.T) {
	ledger := NewLedger()

	if got := ledger.Consumed("nobody"); got != 0 {
		t.Errorf("Consumed(nobody) = %d, want 0", got)
	}
	allowed, remaining := ledger.Remaining("nobody", 50)
	if !allowed || remaining != 50 {
		t.Errorf("Remaining(nobody, 50) = (%v, %d), want (true, 50)", allowed, remaining)
	}
}

// TestDayRollover verifies counts reset by absence when the date changes
func TestDayRollover(t *testing.T) {
	ledger := NewLedger()
	day := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	ledger.now = func() time.Time { return day }

	ledger.Commit("abc123", 45)
	if ledger.Suspicious("abc123", 30) != true {
		t.Fatal("expected user flagged on day one")
	}

	// Next calendar day: same user starts from zero
	ledger.now = func() time.Time { return day.AddDate(0, 0, 1) }

	if got := ledger.Consumed("abc123"); got != 0 {
		t.Errorf("Consumed() = %d after rollover, want 0", got)
	}
	if ledger.Suspicious("abc123", 30) {
		t.Error("flag should clear implicitly at rollover")
	}
}

// TestSuspiciousThreshold verifies the flag fires strictly above the threshold
func TestSuspiciousThreshold(t *testing.T) {
	tests := []struct {
		name     string
		consumed int
		want     bool
	}{
		{"below", 29, false},
		{"at threshold", 30, false},
		{"above", 31, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger()
			ledger.Commit("abc123", tt.consumed)
			if got := ledger.Suspicious("abc123", 30); got != tt.want {
				t.Errorf("Suspicious() with %d consumed = %v, want %v", tt.consumed, got, tt.want)
			}
		})
	}
}

// TestUsersAreIndependent verifies one user's counts never affect another's
func TestUsersAreIndependent(t *testing.T) {
	ledger := NewLedger()
	ledger.Commit("heavy", 49)

	if ledger.Suspicious("light", 30) {
		t.Error("unrelated user flagged")
	}
	allowed, remaining := ledger.Remaining("light", 50)
	if !allowed || remaining != 50 {
		t.Errorf("Remaining(light) = (%v, %d), want (true, 50)", allowed, remaining)
	}
}
