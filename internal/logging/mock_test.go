package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	root := NewMockLogger()
	child := root.WithField(FieldLoanID, "l1").WithError(errors.New("boom"))

	root.Info("loaded")
	child.Warn("payment exceeds balance", Field{Key: FieldAmount, Value: "10"})

	entries := root.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[1].Level)
	assert.EqualError(t, entries[1].Error, "boom")
	assert.Equal(t, []Field{{Key: FieldLoanID, Value: "l1"}, {Key: FieldAmount, Value: "10"}}, entries[1].Fields)

	v, ok := root.FieldValue("payment exceeds balance", FieldLoanID)
	assert.True(t, ok)
	assert.Equal(t, "l1", v)
}

func TestMockLogger_Queries(t *testing.T) {
	m := &MockLogger{}
	m.Debug("a")
	m.Info("b")
	m.Info("c")
	m.Fatalf("stop %d", 1)

	assert.Len(t, m.GetEntriesByLevel("INFO"), 2)
	assert.True(t, m.HasEntry("FATAL", "stop 1"))
	assert.False(t, m.HasEntry("ERROR", "b"))

	m.Clear()
	assert.Empty(t, m.GetEntries())
}

func TestMockLogger_Concurrent(t *testing.T) {
	m := NewMockLogger()
	child := m.WithField(FieldStore, "yaml")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			child.Info("saved")
		}()
	}
	wg.Wait()

	assert.Len(t, m.GetEntriesByLevel("INFO"), 20)
}
