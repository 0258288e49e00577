package scrape

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultCacheTTL bounds how long a cached page counts as fresh.
const DefaultCacheTTL = 24 * time.Hour

// PageCache keeps scraped posting text in a local SQLite database so repeat
// scrapes of the same URL skip the network.
type PageCache struct {
	db *sql.DB
}

// NewPageCache opens (or creates) the cache database at dbPath and ensures
// the pages table exists.
func NewPageCache(dbPath string) (*PageCache, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging cache db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS pages (
		url        TEXT PRIMARY KEY,
		site       TEXT NOT NULL,
		text       TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating pages table: %w", err)
	}

	return &PageCache{db: db}, nil
}

// Get returns the cached text and site for url when it was fetched within
// ttl. A stale or absent entry reports ok=false with no error.
func (c *PageCache) Get(url string, ttl time.Duration) (text, site string, ok bool, err error) {
	cutoff := time.Now().Add(-ttl).Unix()
	err = c.db.QueryRow(
		"SELECT text, site FROM pages WHERE url = ? AND fetched_at > ?", url, cutoff,
	).Scan(&text, &site)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("looking up cached page for %s: %w", url, err)
	}
	return text, site, true, nil
}

// Put stores (or refreshes) the extracted text for url.
func (c *PageCache) Put(url, site, text string) error {
	_, err := c.db.Exec(
		"INSERT OR REPLACE INTO pages (url, site, text, fetched_at) VALUES (?, ?, ?, ?)",
		url, site, text, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("caching page for %s: %w", url, err)
	}
	return nil
}

// Cleanup deletes cache entries older than the given duration.
func (c *PageCache) Cleanup(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).Unix()
	_, err := c.db.Exec("DELETE FROM pages WHERE fetched_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("cleaning up pages older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (c *PageCache) Close() error {
	return c.db.Close()
}
