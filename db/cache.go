package db

import (
	"log/slog"

	"github.com/nickyhof/PrimitiveDB/core"
)

// Cache memoizes select results per table. Entries live until the table
// is invalidated; there is no eviction.
type Cache struct {
	entries map[string]map[string][]core.Row
	logger  *slog.Logger
}

func NewCache(logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		entries: make(map[string]map[string][]core.Row),
		logger:  logger,
	}
}

// Memoize returns the rows cached under (table, key), computing and
// storing them on a miss. Failed computations are not stored.
func (c *Cache) Memoize(table, key string, compute func() ([]core.Row, error)) ([]core.Row, error) {
	if rows, ok := c.entries[table][key]; ok {
		c.logger.Debug("cache hit", "table", table, "key", key)
		return rows, nil
	}

	c.logger.Debug("cache miss", "table", table, "key", key)
	rows, err := compute()
	if err != nil {
		return nil, err
	}

	if c.entries[table] == nil {
		c.entries[table] = make(map[string][]core.Row)
	}
	c.entries[table][key] = rows
	return rows, nil
}

// Invalidate drops every entry of table.
func (c *Cache) Invalidate(table string) {
	if _, ok := c.entries[table]; ok {
		c.logger.Debug("cache invalidated", "table", table)
		delete(c.entries, table)
	}
}

// Len is the number of cached entries across all tables.
func (c *Cache) Len() int {
	n := 0
	for _, keys := range c.entries {
		n += len(keys)
	}
	return n
}
