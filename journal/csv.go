package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

type CSV struct {
	ticks    *csv.Writer
	messages *csv.Writer
	tf, mf   *os.File
}

func NewCSV(ticksPath, messagesPath string) (*CSV, error) {
	tf, err := os.Create(ticksPath)
	if err != nil {
		return nil, err
	}
	mf, err := os.Create(messagesPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	mw := csv.NewWriter(mf)

	if err := tw.Write([]string{"month", "cash", "debt", "deposit", "credit_score", "net_worth"}); err != nil {
		return nil, err
	}
	if err := mw.Write([]string{"message_id", "month", "severity", "text"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	mw.Flush()
	if err := mw.Error(); err != nil {
		return nil, err
	}

	return &CSV{tw, mw, tf, mf}, nil
}

func (j *CSV) RecordTick(t TickRecord) error {
	err := j.ticks.Write([]string{
		strconv.Itoa(t.Month),
		f(t.Cash),
		f(t.Debt),
		f(t.Deposit),
		strconv.Itoa(t.CreditScore),
		f(t.NetWorth),
	})
	if err != nil {
		return err
	}
	j.ticks.Flush()
	return j.ticks.Error()
}

func (j *CSV) RecordMessage(m MessageRecord) error {
	err := j.messages.Write([]string{
		m.ID,
		strconv.Itoa(m.Month),
		m.Severity,
		m.Text,
	})
	if err != nil {
		return err
	}
	j.messages.Flush()
	return j.messages.Error()
}

func (j *CSV) Close() error {
	j.ticks.Flush()
	if err := j.ticks.Error(); err != nil {
		return err
	}
	j.messages.Flush()
	if err := j.messages.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.mf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
