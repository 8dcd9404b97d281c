package storage

// Phrase is one labeled lexicon entry
type Phrase struct {
	ID     int64
	Label  string
	Phrase string
}

// InsertPhrase inserts a labeled phrase into the lexicon and returns
// its ID. Re-inserting an existing (label, phrase) pair is a no-op.
func (db *DB) InsertPhrase(label, phrase string) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT OR IGNORE INTO phrases (label, phrase) VALUES (?, ?)`,
		label, phrase,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// Phrases returns every lexicon entry, longest phrase first so the
// matcher can prefer the most specific span.
func (db *DB) Phrases() ([]Phrase, error) {
	rows, err := db.conn.Query(
		`SELECT id, label, phrase FROM phrases ORDER BY length(phrase) DESC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Phrase
	for rows.Next() {
		var p Phrase
		if err := rows.Scan(&p.ID, &p.Label, &p.Phrase); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountPhrases returns the number of lexicon entries
func (db *DB) CountPhrases() (int64, error) {
	var n int64
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM phrases`).Scan(&n)
	return n, err
}
