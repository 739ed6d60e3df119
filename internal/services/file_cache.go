package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/sirupsen/logrus"
)

// FileCache persists fetched shot data and headshots under a single
// directory, one file per (player, season, kind) key. File modification
// time is the only freshness signal, so entries survive restarts and
// can be inspected or deleted by hand.
type FileCache struct {
	dir      string
	shotTTL  time.Duration
	imageTTL time.Duration
	logger   *logrus.Logger
}

// CacheStats summarizes the cache directory for the ops endpoints.
type CacheStats struct {
	Entries    int    `json:"entries"`
	ShotFiles  int    `json:"shot_files"`
	ImageFiles int    `json:"image_files"`
	TotalBytes int64  `json:"total_bytes"`
	OldestFile string `json:"oldest_file,omitempty"`
	OldestAge  string `json:"oldest_age,omitempty"`
}

func NewFileCache(dir string, shotTTL, imageTTL time.Duration, logger *logrus.Logger) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{
		dir:      dir,
		shotTTL:  shotTTL,
		imageTTL: imageTTL,
		logger:   logger,
	}, nil
}

// Cache filename generators. The key space is unique per tuple, so the
// names never collide.
func (c *FileCache) shotPath(playerID int, season string) string {
	return filepath.Join(c.dir, fmt.Sprintf("%d_%s_shots.json", playerID, season))
}

func (c *FileCache) imagePath(playerID int) string {
	return filepath.Join(c.dir, fmt.Sprintf("%d_headshot.png", playerID))
}

// GetShots returns the cached shot data for a player and season, calling
// fetch only when no valid entry exists. Fetch failures and empty
// results are returned without writing, so the next call retries instead
// of caching the bad outcome.
func (c *FileCache) GetShots(ctx context.Context, playerID int, season string, fetch nba.FetchFunc) ([]nba.ShotRecord, error) {
	path := c.shotPath(playerID, season)

	if c.isValid(path, c.shotTTL) {
		data, err := os.ReadFile(path)
		if err == nil {
			var records []nba.ShotRecord
			if err := json.Unmarshal(data, &records); err == nil {
				return records, nil
			}
			// Corrupt entry reads as a miss.
			c.logger.WithFields(logrus.Fields{
				"component": "file_cache",
				"file":      filepath.Base(path),
			}).Warn("Discarding corrupt cache entry")
		}
	}

	records, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	if err := c.writeJSON(path, records); err != nil {
		c.logger.WithFields(logrus.Fields{
			"component": "file_cache",
			"file":      filepath.Base(path),
		}).WithError(err).Warn("Failed to write cache entry")
	}
	return records, nil
}

// GetImage is GetShots' counterpart for headshot bytes, under the longer
// image TTL.
func (c *FileCache) GetImage(ctx context.Context, playerID int, fetch nba.ImageFetchFunc) ([]byte, error) {
	path := c.imagePath(playerID)

	if c.isValid(path, c.imageTTL) {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return data, nil
		}
	}

	data, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return data, nil
	}

	if err := c.writeAtomic(path, data); err != nil {
		c.logger.WithFields(logrus.Fields{
			"component": "file_cache",
			"file":      filepath.Base(path),
		}).WithError(err).Warn("Failed to write cache entry")
	}
	return data, nil
}

// Invalidate removes cache entries. A non-zero playerID removes that
// player's entries regardless of age; otherwise every entry older than
// olderThan is removed. Returns the number of files deleted.
func (c *FileCache) Invalidate(playerID int, olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	playerPrefix := ""
	if playerID > 0 {
		playerPrefix = fmt.Sprintf("%d_", playerID)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isCacheFile(entry.Name()) {
			continue
		}

		if playerPrefix != "" {
			if !strings.HasPrefix(entry.Name(), playerPrefix) {
				continue
			}
		} else {
			info, err := entry.Info()
			if err != nil || time.Since(info.ModTime()) <= olderThan {
				continue
			}
		}

		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			c.logger.WithFields(logrus.Fields{
				"component": "file_cache",
				"file":      entry.Name(),
			}).WithError(err).Warn("Failed to remove cache entry")
			continue
		}
		removed++
	}

	c.logger.WithFields(logrus.Fields{
		"component": "file_cache",
		"player_id": playerID,
		"removed":   removed,
	}).Info("Cache invalidated")
	return removed, nil
}

// Sweep deletes expired entries of both kinds using their own TTLs. The
// janitor runs this on a schedule.
func (c *FileCache) Sweep() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isCacheFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		ttl := c.shotTTL
		if strings.HasSuffix(entry.Name(), ".png") {
			ttl = c.imageTTL
		}
		if time.Since(info.ModTime()) < ttl {
			continue
		}

		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			continue
		}
		removed++
	}
	return removed, nil
}

// Stats reports entry counts, total size and the oldest entry's age.
func (c *FileCache) Stats() (CacheStats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return CacheStats{}, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var stats CacheStats
	var oldest time.Time
	for _, entry := range entries {
		if entry.IsDir() || !isCacheFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		stats.Entries++
		stats.TotalBytes += info.Size()
		if strings.HasSuffix(entry.Name(), ".png") {
			stats.ImageFiles++
		} else {
			stats.ShotFiles++
		}
		if oldest.IsZero() || info.ModTime().Before(oldest) {
			oldest = info.ModTime()
			stats.OldestFile = entry.Name()
			stats.OldestAge = time.Since(info.ModTime()).Round(time.Second).String()
		}
	}
	return stats, nil
}

// isValid reports whether the entry at path exists and is younger than
// ttl. Validity is strict: an entry exactly at the TTL is stale.
func (c *FileCache) isValid(path string, ttl time.Duration) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < ttl
}

func (c *FileCache) writeJSON(path string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.writeAtomic(path, data)
}

// writeAtomic replaces path via a temp file and rename, so readers never
// observe a partial entry.
func (c *FileCache) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache entry: %w", err)
	}
	return nil
}

// isCacheFile filters out temp files and strays so sweeps and stats only
// touch entries this cache wrote.
func isCacheFile(name string) bool {
	return !strings.HasPrefix(name, ".") &&
		(strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".png"))
}
