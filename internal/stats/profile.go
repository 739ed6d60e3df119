package stats

import (
	"math"
	"sort"

	"github.com/jstittsworth/shotcharts/internal/nba"
)

// Breakdown aggregates one slice of a player's shots: a shot type, a
// court zone or a distance band.
type Breakdown struct {
	Label        string  `json:"label"`
	Attempts     int     `json:"attempts"`
	Makes        int     `json:"makes"`
	FieldGoalPct float64 `json:"fg_pct"`
	SharePct     float64 `json:"share_pct"`
}

// ShotProfile summarizes a season of shots for the profile endpoint.
// Zones keeps only the five most attempted zones; Distances always
// covers the full range in order from the rim outward.
type ShotProfile struct {
	Attempts     int         `json:"attempts"`
	Makes        int         `json:"makes"`
	FieldGoalPct float64     `json:"fg_pct"`
	ShotTypes    []Breakdown `json:"shot_types,omitempty"`
	Zones        []Breakdown `json:"zones,omitempty"`
	Distances    []Breakdown `json:"distances,omitempty"`
}

const topZones = 5

// Distance bands in feet. A band covers distances up to and including
// its bound; everything past the last bound is a 23+ footer.
var distanceBands = []struct {
	label string
	bound float64
}{
	{"0-3 ft", 3},
	{"3-10 ft", 10},
	{"10-16 ft", 16},
	{"16-23 ft", 23},
	{"23+ ft", math.Inf(1)},
}

// Profile computes the full shot breakdown for a set of records. Empty
// input yields a zero profile.
func Profile(records []nba.ShotRecord) ShotProfile {
	if len(records) == 0 {
		return ShotProfile{}
	}

	profile := ShotProfile{Attempts: len(records)}
	for _, r := range records {
		if r.Made {
			profile.Makes++
		}
	}
	profile.FieldGoalPct = pct(profile.Makes, profile.Attempts)

	profile.ShotTypes = groupBy(records, func(r nba.ShotRecord) string { return r.ShotType })
	profile.Zones = groupBy(records, func(r nba.ShotRecord) string { return r.ShotZone })
	if len(profile.Zones) > topZones {
		profile.Zones = profile.Zones[:topZones]
	}
	profile.Distances = distanceBreakdown(records)

	return profile
}

// groupBy tallies records per key and returns breakdowns sorted by
// attempts descending, label ascending on ties. Records with an empty
// key are skipped.
func groupBy(records []nba.ShotRecord, key func(nba.ShotRecord) string) []Breakdown {
	attempts := make(map[string]int)
	makes := make(map[string]int)
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		attempts[k]++
		if r.Made {
			makes[k]++
		}
	}

	out := make([]Breakdown, 0, len(attempts))
	for label, n := range attempts {
		out = append(out, Breakdown{
			Label:        label,
			Attempts:     n,
			Makes:        makes[label],
			FieldGoalPct: pct(makes[label], n),
			SharePct:     pct(n, len(records)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Attempts != out[j].Attempts {
			return out[i].Attempts > out[j].Attempts
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// distanceBreakdown buckets records into the fixed distance bands,
// keeping every band so the caller always sees the full range.
func distanceBreakdown(records []nba.ShotRecord) []Breakdown {
	out := make([]Breakdown, len(distanceBands))
	for i, band := range distanceBands {
		out[i].Label = band.label
	}

	for _, r := range records {
		i := sort.Search(len(distanceBands), func(i int) bool {
			return r.ShotDistance <= distanceBands[i].bound
		})
		out[i].Attempts++
		if r.Made {
			out[i].Makes++
		}
	}

	for i := range out {
		out[i].FieldGoalPct = pct(out[i].Makes, out[i].Attempts)
		out[i].SharePct = pct(out[i].Attempts, len(records))
	}
	return out
}

// pct returns part of whole as a percentage rounded to one decimal.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
