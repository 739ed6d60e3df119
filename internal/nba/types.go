package nba

import (
	"context"
)

// ShotRecord represents one shot attempt from the stats API.
// Coordinates are court-relative inches with the origin at the basket:
// x spans roughly [-250, 250], y spans roughly [-47.5, 422.5].
type ShotRecord struct {
	LocX         float64 `json:"loc_x"`
	LocY         float64 `json:"loc_y"`
	Made         bool    `json:"made"`
	ShotType     string  `json:"shot_type"`     // e.g. "2PT Field Goal"
	ShotZone     string  `json:"shot_zone"`     // e.g. "Restricted Area"
	ShotDistance float64 `json:"shot_distance"` // feet
}

// SeasonType selects which portion of a season the stats API returns.
type SeasonType string

const (
	SeasonTypeRegular  SeasonType = "Regular Season"
	SeasonTypePlayoffs SeasonType = "Playoffs"
)

// Cache data kinds, used to derive cache filenames and TTLs.
const (
	KindShotChart = "shotchart"
	KindHeadshot  = "headshot"
)

// ShotProvider fetches a player's shot attempts for a season from an
// external source. An error means the fetch failed; a nil error with an
// empty slice means the source has no data for that player/season.
type ShotProvider interface {
	FetchShots(ctx context.Context, playerID int, season string, seasonType SeasonType) ([]ShotRecord, error)
}

// ImageProvider fetches a player image. A nil error with nil bytes never
// occurs; absence is reported as an error.
type ImageProvider interface {
	FetchHeadshot(ctx context.Context, playerID int) ([]byte, error)
}

// FetchFunc is the fetch half of the cache's read-through contract.
type FetchFunc func(ctx context.Context) ([]ShotRecord, error)

// ImageFetchFunc is FetchFunc's counterpart for cached image bytes.
type ImageFetchFunc func(ctx context.Context) ([]byte, error)
