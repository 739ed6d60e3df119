package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *FileCache {
	t.Helper()
	cache, err := NewFileCache(t.TempDir(), 24*time.Hour, 168*time.Hour, logrus.New())
	require.NoError(t, err)
	return cache
}

// countingFetch returns canned records and counts its invocations.
func countingFetch(records []nba.ShotRecord, calls *int) nba.FetchFunc {
	return func(ctx context.Context) ([]nba.ShotRecord, error) {
		*calls++
		return records, nil
	}
}

func sampleShots() []nba.ShotRecord {
	return []nba.ShotRecord{
		{LocX: -158, LocY: 198, Made: true, ShotType: "3PT Field Goal", ShotZone: "Above the Break 3", ShotDistance: 26},
		{LocX: 10, LocY: 14, Made: false, ShotType: "2PT Field Goal", ShotZone: "Restricted Area", ShotDistance: 2},
	}
}

// TestGetShotsFetchesAndCaches tests the read-through miss then hit path
func TestGetShotsFetchesAndCaches(t *testing.T) {
	cache := newTestCache(t)
	var calls int
	fetch := countingFetch(sampleShots(), &calls)

	first, err := cache.GetShots(context.Background(), 201939, "2024-25", fetch)
	require.NoError(t, err)
	assert.Equal(t, sampleShots(), first)
	assert.Equal(t, 1, calls)

	require.FileExists(t, cache.shotPath(201939, "2024-25"))

	second, err := cache.GetShots(context.Background(), 201939, "2024-25", fetch)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "A valid entry should satisfy the read without fetching")
}

// TestGetShotsEmptyResultNotCached tests that empty fetches retry later
func TestGetShotsEmptyResultNotCached(t *testing.T) {
	cache := newTestCache(t)
	var calls int
	fetch := countingFetch(nil, &calls)

	records, err := cache.GetShots(context.Background(), 1628369, "2024-25", fetch)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoFileExists(t, cache.shotPath(1628369, "2024-25"))

	_, err = cache.GetShots(context.Background(), 1628369, "2024-25", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "Empty results should not be cached")
}

// TestGetShotsFetchFailure tests error propagation and stale preservation
func TestGetShotsFetchFailure(t *testing.T) {
	cache := newTestCache(t)
	var calls int

	_, err := cache.GetShots(context.Background(), 201939, "2024-25", countingFetch(sampleShots(), &calls))
	require.NoError(t, err)

	// Age the entry past its TTL, then fail the refresh.
	path := cache.shotPath(201939, "2024-25")
	old := time.Now().Add(-25 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	fetchErr := errors.New("upstream down")
	_, err = cache.GetShots(context.Background(), 201939, "2024-25", func(ctx context.Context) ([]nba.ShotRecord, error) {
		return nil, fetchErr
	})
	assert.ErrorIs(t, err, fetchErr)
	assert.FileExists(t, path, "A failed refresh should leave the stale entry in place")
}

// TestGetShotsTTLBoundary tests strict freshness around the 24h TTL
func TestGetShotsTTLBoundary(t *testing.T) {
	cache := newTestCache(t)
	var calls int
	fetch := countingFetch(sampleShots(), &calls)

	_, err := cache.GetShots(context.Background(), 201939, "2024-25", fetch)
	require.NoError(t, err)
	path := cache.shotPath(201939, "2024-25")

	almostExpired := time.Now().Add(-24*time.Hour + time.Minute)
	require.NoError(t, os.Chtimes(path, almostExpired, almostExpired))
	_, err = cache.GetShots(context.Background(), 201939, "2024-25", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "An entry one minute under the TTL is still valid")

	justExpired := time.Now().Add(-24*time.Hour - time.Minute)
	require.NoError(t, os.Chtimes(path, justExpired, justExpired))
	_, err = cache.GetShots(context.Background(), 201939, "2024-25", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "An entry one minute past the TTL must refetch")
}

// TestGetShotsCorruptEntry tests that unreadable entries read as misses
func TestGetShotsCorruptEntry(t *testing.T) {
	cache := newTestCache(t)
	path := cache.shotPath(201939, "2024-25")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var calls int
	records, err := cache.GetShots(context.Background(), 201939, "2024-25", countingFetch(sampleShots(), &calls))
	require.NoError(t, err)
	assert.Equal(t, sampleShots(), records)
	assert.Equal(t, 1, calls, "A corrupt entry should fall through to fetch")

	// The corrupt file was replaced by the fresh result.
	var again int
	_, err = cache.GetShots(context.Background(), 201939, "2024-25", countingFetch(nil, &again))
	require.NoError(t, err)
	assert.Zero(t, again)
}

// TestGetImageCaching tests the image read-through path
func TestGetImageCaching(t *testing.T) {
	cache := newTestCache(t)
	want := []byte("\x89PNG fake image bytes")

	var calls int
	fetch := func(ctx context.Context) ([]byte, error) {
		calls++
		return want, nil
	}

	data, err := cache.GetImage(context.Background(), 201939, fetch)
	require.NoError(t, err)
	assert.Equal(t, want, data)
	require.FileExists(t, cache.imagePath(201939))

	data, err = cache.GetImage(context.Background(), 201939, fetch)
	require.NoError(t, err)
	assert.Equal(t, want, data)
	assert.Equal(t, 1, calls)
}

// TestInvalidate tests by-player and by-age eviction
func TestInvalidate(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	var calls int

	_, err := cache.GetShots(ctx, 201939, "2024-25", countingFetch(sampleShots(), &calls))
	require.NoError(t, err)
	_, err = cache.GetShots(ctx, 2544, "2024-25", countingFetch(sampleShots(), &calls))
	require.NoError(t, err)
	_, err = cache.GetImage(ctx, 201939, func(ctx context.Context) ([]byte, error) { return []byte("img"), nil })
	require.NoError(t, err)

	t.Run("By player", func(t *testing.T) {
		removed, err := cache.Invalidate(201939, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, removed, "Both of the player's entries should go")
		assert.NoFileExists(t, cache.shotPath(201939, "2024-25"))
		assert.NoFileExists(t, cache.imagePath(201939))
		assert.FileExists(t, cache.shotPath(2544, "2024-25"), "Other players' entries stay")
	})

	t.Run("By age", func(t *testing.T) {
		path := cache.shotPath(2544, "2024-25")
		old := time.Now().Add(-48 * time.Hour)
		require.NoError(t, os.Chtimes(path, old, old))

		removed, err := cache.Invalidate(0, 24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.NoFileExists(t, path)
	})
}

// TestSweep tests per-kind TTLs during the janitor sweep
func TestSweep(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	var calls int

	_, err := cache.GetShots(ctx, 201939, "2024-25", countingFetch(sampleShots(), &calls))
	require.NoError(t, err)
	_, err = cache.GetImage(ctx, 201939, func(ctx context.Context) ([]byte, error) { return []byte("img"), nil })
	require.NoError(t, err)
	_, err = cache.GetImage(ctx, 2544, func(ctx context.Context) ([]byte, error) { return []byte("img"), nil })
	require.NoError(t, err)

	// Shot entry past 24h, one image past its 168h TTL, one image not.
	dayOld := time.Now().Add(-25 * time.Hour)
	require.NoError(t, os.Chtimes(cache.shotPath(201939, "2024-25"), dayOld, dayOld))
	require.NoError(t, os.Chtimes(cache.imagePath(201939), dayOld, dayOld))
	weekOld := time.Now().Add(-200 * time.Hour)
	require.NoError(t, os.Chtimes(cache.imagePath(2544), weekOld, weekOld))

	removed, err := cache.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoFileExists(t, cache.shotPath(201939, "2024-25"))
	assert.FileExists(t, cache.imagePath(201939), "Images expire on the longer TTL")
	assert.NoFileExists(t, cache.imagePath(2544))
}

// TestStats tests directory accounting
func TestStats(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	var calls int

	_, err := cache.GetShots(ctx, 201939, "2024-25", countingFetch(sampleShots(), &calls))
	require.NoError(t, err)
	_, err = cache.GetImage(ctx, 201939, func(ctx context.Context) ([]byte, error) { return []byte("img"), nil })
	require.NoError(t, err)

	stats, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.ShotFiles)
	assert.Equal(t, 1, stats.ImageFiles)
	assert.Positive(t, stats.TotalBytes)
	assert.NotEmpty(t, stats.OldestFile)
}
