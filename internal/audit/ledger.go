package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// LedgerEntry is one tamper-evident record in a DecisionLedger: the
// decision's routing fields plus a hash/previous-hash pair linking it to
// its predecessor.
type LedgerEntry struct {
	ID             string                 `json:"id"`
	MarketID       string                 `json:"marketId"`
	GateName       string                 `json:"gateName"`
	EventType      string                 `json:"eventType"`
	ViolationCodes []string               `json:"violationCodes,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	Timestamp      time.Time              `json:"timestamp"`

	Hash         string `json:"hash"`
	PreviousHash string `json:"previousHash"`
}

// computeHash hashes every field except Hash itself, so the hash commits
// to the entry's content and its link to the previous entry.
func (e LedgerEntry) computeHash() string {
	e.Hash = ""
	data, _ := json.Marshal(e)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DecisionLedger is an optional, in-memory, hash-chained append-only log
// of compliance decisions - for deployments that want tamper-evidence on
// top of whatever durable AuditSink they already write to. It is not a
// replacement for the database adapters in internal/database; it is a
// narrower, additional guarantee. The chain is lazily started: the first
// Append has an empty PreviousHash rather than a synthetic genesis record.
type DecisionLedger struct {
	mu       sync.RWMutex
	entries  []LedgerEntry
	lastHash string
}

// NewDecisionLedger creates an empty ledger.
func NewDecisionLedger() *DecisionLedger {
	return &DecisionLedger{}
}

// Append adds event as the next ledger entry, linking it to the previous
// entry's hash, and returns the stored entry (with ID/Hash/PreviousHash
// populated).
func (l *DecisionLedger) Append(event Event) LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	codes := make([]string, len(event.ViolationCodes))
	for i, c := range event.ViolationCodes {
		codes[i] = string(c)
	}

	entry := LedgerEntry{
		ID:             fmt.Sprintf("ledger_%s_%d", event.GateName, len(l.entries)+1),
		MarketID:       event.MarketID,
		GateName:       event.GateName,
		EventType:      event.EventType,
		ViolationCodes: codes,
		Metadata:       event.Metadata,
		Timestamp:      event.OccurredAt,
		PreviousHash:   l.lastHash,
	}
	entry.Hash = entry.computeHash()

	l.entries = append(l.entries, entry)
	l.lastHash = entry.Hash
	return entry
}

// Entries returns a copy of the ledger's entries in append order.
func (l *DecisionLedger) Entries() []LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Verify walks the full chain and reports whether every entry's hash
// matches its recomputed content and every link matches the previous
// entry's hash. A false result means the in-memory ledger has been
// mutated outside of Append.
func (l *DecisionLedger) Verify() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prev := ""
	for _, entry := range l.entries {
		if entry.PreviousHash != prev {
			return false
		}
		if entry.computeHash() != entry.Hash {
			return false
		}
		prev = entry.Hash
	}
	return true
}
