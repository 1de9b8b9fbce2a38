package tracestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coalmine/flexrt/internal/lexer"
)

func TestStore_RecordsScanTrace(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "trace.db")
	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	s := lexer.New(
		lexer.WithDebugEnabled(true),
		lexer.WithSessionIDGenerator(lexer.NewFixedGenerator("session-1")),
	)
	s.SetTraceSink(store.Sink(s.SessionID(), "hash-abc"))
	require.NoError(t, s.AddRule(lexer.Literal("a"), nil))

	s.SetSource("a")
	_, err = s.LexAll()
	require.NoError(t, err)

	events, err := store.Session(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "INITIAL", events[0].State)
	assert.Equal(t, "a", events[0].Pattern)
	assert.Equal(t, "a", events[0].MatchedText)
}
