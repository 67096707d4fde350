package places

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Cache stores resolved place labels in SQLite, keyed by rounded coordinate.
// Only labels are cached; claim data never touches this database.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

// NewCache opens (or creates) a SQLite cache at dsn. A ttl of zero disables
// expiry.
func NewCache(dsn string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "places: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "places: exec %s", pragma)
		}
	}

	c := &Cache{db: db, ttl: ttl}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS place_cache (
	coord_key    TEXT PRIMARY KEY,
	label        TEXT NOT NULL,
	looked_up_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (c *Cache) migrate() error {
	_, err := c.db.Exec(cacheMigration)
	return eris.Wrap(err, "places: migrate cache")
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// coordKey rounds to 4 decimal places (roughly 11 m), so nearby checks from
// the same visitor share a cache entry.
func coordKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// Get returns the cached place for a coordinate, or (nil, nil) on a miss or
// expired entry.
func (c *Cache) Get(ctx context.Context, lat, lng float64) (*Place, error) {
	key := coordKey(lat, lng)

	var label string
	var lookedUpAt time.Time
	err := c.db.QueryRowContext(ctx,
		`SELECT label, looked_up_at FROM place_cache WHERE coord_key = ?`, key,
	).Scan(&label, &lookedUpAt)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "places: cache get")
	}

	if c.ttl > 0 && time.Since(lookedUpAt) > c.ttl {
		return nil, nil
	}

	zap.L().Debug("places: cache hit", zap.String("key", key))
	return &Place{Label: label}, nil
}

// Put stores a resolved place for a coordinate, replacing any prior entry.
func (c *Cache) Put(ctx context.Context, lat, lng float64, p *Place) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO place_cache (coord_key, label, looked_up_at)
		VALUES (?, ?, ?)
		ON CONFLICT (coord_key) DO UPDATE SET
			label = excluded.label,
			looked_up_at = excluded.looked_up_at`,
		coordKey(lat, lng), p.Label, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrap(err, "places: cache put")
	}
	return nil
}
