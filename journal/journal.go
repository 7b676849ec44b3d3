// Package journal records the wealth curve of a game as it is played.
// Implementations write one row per committed month plus every narration
// entry; the engine treats recording failures as non-fatal.
package journal

// TickRecord is the snapshot row written after each committed month.
type TickRecord struct {
	Month       int
	Cash        float64
	Debt        float64
	Deposit     float64
	CreditScore int
	NetWorth    float64
}

// MessageRecord is one narration entry.
type MessageRecord struct {
	ID       string
	Month    int
	Severity string
	Text     string
}

type Journal interface {
	RecordTick(TickRecord) error
	RecordMessage(MessageRecord) error
	Close() error
}

// Noop satisfies Journal and records nothing.
type Noop struct{}

func (Noop) RecordTick(TickRecord) error       { return nil }
func (Noop) RecordMessage(MessageRecord) error { return nil }
func (Noop) Close() error                      { return nil }
