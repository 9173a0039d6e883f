package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

// SessionID is an opaque handle identifying a caller within one running
// process. It is collision-tolerant, not security-grade.
type SessionID string

// NewSessionID derives a short session handle from the current time
func NewSessionID() SessionID {
	sum := md5.Sum([]byte(fmt.Sprintf("%d", time.Now().UnixNano())))
	return SessionID(hex.EncodeToString(sum[:])[:8])
}
