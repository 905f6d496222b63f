package stats

// GenreStatsSchema defines the genre usage statistics table.
// seq keeps insertion order, which is the tie-break order for top genre selection.
const GenreStatsSchema = `
CREATE TABLE IF NOT EXISTS genre_stats (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	genre_id INTEGER NOT NULL UNIQUE,
	name TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
