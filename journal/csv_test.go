package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRecordsTicksAndMessages(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ticksPath := filepath.Join(dir, "ticks.csv")
	messagesPath := filepath.Join(dir, "messages.csv")

	j, err := NewCSV(ticksPath, messagesPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTick(TickRecord{Month: 1, Cash: 4200, CreditScore: 650, NetWorth: 4200}))
	require.NoError(t, j.RecordMessage(MessageRecord{ID: "01A", Month: 1, Severity: "info", Text: "hello"}))
	require.NoError(t, j.Close())

	tf, err := os.Open(ticksPath)
	require.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"month", "cash", "debt", "deposit", "credit_score", "net_worth"}, rows[0])
	assert.Equal(t, []string{"1", "4200.00", "0.00", "0.00", "650", "4200.00"}, rows[1])

	mf, err := os.Open(messagesPath)
	require.NoError(t, err)
	defer mf.Close()

	mrows, err := csv.NewReader(mf).ReadAll()
	require.NoError(t, err)
	require.Len(t, mrows, 2)
	assert.Equal(t, []string{"01A", "1", "info", "hello"}, mrows[1])
}

func TestNoopJournal(t *testing.T) {
	t.Parallel()

	var j Journal = Noop{}
	assert.NoError(t, j.RecordTick(TickRecord{Month: 1}))
	assert.NoError(t, j.RecordMessage(MessageRecord{ID: "x"}))
	assert.NoError(t, j.Close())
}
