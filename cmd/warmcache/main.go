package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/shotcharts/internal/nba"
	"github.com/jstittsworth/shotcharts/internal/players"
	"github.com/jstittsworth/shotcharts/internal/providers"
	"github.com/jstittsworth/shotcharts/internal/services"
	"github.com/jstittsworth/shotcharts/pkg/config"
	"github.com/jstittsworth/shotcharts/pkg/logger"
)

// warmcache prefetches shot data and headshots into the file cache so
// the first dashboard load after a deploy does not pay the stats API
// delay for every player.
func main() {
	var (
		playerName = flag.String("player", "", "warm a single player by exact display name")
		season     = flag.String("season", "", "season to warm, defaults to the configured current season")
		seasonType = flag.String("season-type", string(nba.SeasonTypeRegular), `"Regular Season" or "Playoffs"`)
		headshots  = flag.Bool("headshots", true, "also warm headshot images")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	if *season == "" {
		*season = cfg.CurrentSeason
	}
	st := nba.SeasonType(*seasonType)
	if st != nba.SeasonTypeRegular && st != nba.SeasonTypePlayoffs {
		log.Fatalf("Invalid season type %q", *seasonType)
	}

	cache, err := services.NewFileCache(cfg.CacheDir, cfg.ShotTTL(), cfg.ImageTTL(), log)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	breakers := services.NewCircuitBreakerService(3, 30*time.Second, log)
	statsClient := providers.NewStatsClient(cfg.StatsBaseURL, cfg.FetchDelay(), cfg.ExternalAPITimeout, breakers, log)
	headshotClient := providers.NewHeadshotClient(cfg.HeadshotBaseURL, cfg.FetchDelay(), cfg.ExternalAPITimeout, breakers, log)

	directory := players.New()
	names := directory.Names()
	if *playerName != "" {
		if _, ok := directory.IDFor(*playerName); !ok {
			log.Fatalf("Player %q not in directory", *playerName)
		}
		names = []string{*playerName}
	}

	ctx := context.Background()
	warmed, failed := 0, 0
	for _, name := range names {
		id, _ := directory.IDFor(name)
		plog := log.WithFields(logrus.Fields{
			"player":    name,
			"player_id": id,
			"season":    *season,
		})

		records, err := cache.GetShots(ctx, id, *season, func(ctx context.Context) ([]nba.ShotRecord, error) {
			return statsClient.FetchShots(ctx, id, *season, st)
		})
		if err != nil {
			failed++
			plog.WithError(err).Warn("Skipping player, shot fetch failed")
			continue
		}
		plog.WithField("shots", len(records)).Info("Shot data warmed")

		if *headshots {
			if _, err := cache.GetImage(ctx, id, func(ctx context.Context) ([]byte, error) {
				return headshotClient.FetchHeadshot(ctx, id)
			}); err != nil {
				plog.WithError(err).Warn("Headshot fetch failed")
			}
		}
		warmed++
	}

	log.WithFields(logrus.Fields{
		"warmed": warmed,
		"failed": failed,
		"season": *season,
	}).Info("Cache warm complete")
}
