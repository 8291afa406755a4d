package playerstats

import (
	"math"
	"strconv"
	"strings"

	"github.com/riskibarqy/hoops-sync/internal/domain/fixture"
)

const (
	// DefaultCounter is stored for counters the provider omits.
	DefaultCounter = "0"
	// DefaultOnCourt is stored when the on-court flag is omitted.
	DefaultOnCourt = "False"
)

// Line is one player's box score in one fixture. Counters are kept exactly as
// the provider formats them; use Value for arithmetic.
type Line struct {
	FixtureID          string
	PlayerKey          string
	Side               fixture.Side
	Position           string
	Minutes            string
	Points             string
	Assists            string
	Blocks             string
	Steals             string
	Turnovers          string
	PersonalFouls      string
	PlusMinus          string
	DefenseRebounds    string
	OffenceRebounds    string
	TotalRebounds      string
	FieldGoalsMade     string
	FieldGoalsAttempts string
	ThreePointMade     string
	ThreePointAttempts string
	FreeThrowsMade     string
	FreeThrowsAttempts string
	OnCourt            string
}

// WithDefaults fills empty counters with DefaultCounter and an empty on-court
// flag with DefaultOnCourt.
func (l Line) WithDefaults() Line {
	for _, field := range []*string{
		&l.Minutes, &l.Points, &l.Assists, &l.Blocks, &l.Steals, &l.Turnovers,
		&l.PersonalFouls, &l.PlusMinus, &l.DefenseRebounds, &l.OffenceRebounds,
		&l.TotalRebounds, &l.FieldGoalsMade, &l.FieldGoalsAttempts,
		&l.ThreePointMade, &l.ThreePointAttempts, &l.FreeThrowsMade, &l.FreeThrowsAttempts,
	} {
		if strings.TrimSpace(*field) == "" {
			*field = DefaultCounter
		}
	}
	if strings.TrimSpace(l.OnCourt) == "" {
		l.OnCourt = DefaultOnCourt
	}
	return l
}

// Value parses a stored counter. Unparsable and non-finite values count as
// zero. Minutes may arrive as "mm:ss" and are converted to fractional minutes.
func Value(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if mins, secs, ok := strings.Cut(raw, ":"); ok {
		m, errM := strconv.ParseFloat(mins, 64)
		s, errS := strconv.ParseFloat(secs, 64)
		if errM != nil || errS != nil {
			return 0
		}
		return finite(m + s/60)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
