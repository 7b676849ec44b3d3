package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTick(t TickRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO ticks
		(month, cash, debt, deposit, credit_score, net_worth)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Month, t.Cash, t.Debt, t.Deposit, t.CreditScore, t.NetWorth,
	)
	return err
}

func (j *SQLite) RecordMessage(m MessageRecord) error {
	_, err := j.db.Exec(`
		INSERT OR IGNORE INTO messages
		(message_id, month, severity, text)
		VALUES (?, ?, ?, ?)`,
		m.ID, m.Month, m.Severity, m.Text,
	)
	return err
}

// ListTicks returns the recorded wealth curve in month order.
func (j *SQLite) ListTicks() ([]TickRecord, error) {
	rows, err := j.db.Query(`
		SELECT month, cash, debt, deposit, credit_score, net_worth
		FROM ticks
		ORDER BY month ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var t TickRecord
		if err := rows.Scan(&t.Month, &t.Cash, &t.Debt, &t.Deposit, &t.CreditScore, &t.NetWorth); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
