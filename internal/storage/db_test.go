package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "lexicon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertPhraseIgnoresDuplicates(t *testing.T) {
	db := openTest(t)

	_, err := db.InsertPhrase("ACTOR", "customer")
	require.NoError(t, err)
	_, err = db.InsertPhrase("ACTOR", "customer")
	require.NoError(t, err)

	n, err := db.CountPhrases()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSamePhraseUnderTwoLabels(t *testing.T) {
	db := openTest(t)

	_, err := db.InsertPhrase("ACTOR", "system")
	require.NoError(t, err)
	_, err = db.InsertPhrase("COMPONENT", "system")
	require.NoError(t, err)

	n, err := db.CountPhrases()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPhrasesOrderedLongestFirst(t *testing.T) {
	db := openTest(t)

	for _, p := range []string{"service", "payment service", "api"} {
		_, err := db.InsertPhrase("COMPONENT", p)
		require.NoError(t, err)
	}

	phrases, err := db.Phrases()
	require.NoError(t, err)
	require.Len(t, phrases, 3)
	assert.Equal(t, "payment service", phrases[0].Phrase)
	assert.Equal(t, "service", phrases[1].Phrase)
	assert.Equal(t, "api", phrases[2].Phrase)
}

func TestClear(t *testing.T) {
	db := openTest(t)

	_, err := db.InsertPhrase("ACTOR", "customer")
	require.NoError(t, err)
	require.NoError(t, db.Clear())

	n, err := db.CountPhrases()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
