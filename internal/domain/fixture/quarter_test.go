package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuarterRank(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"1st":        1,
		"2nd":        2,
		"3rd":        3,
		"4th":        4,
		"OT":         5,
		"1stQuarter": 1,
		"4thQuarter": 4,
		"Overtime":   5,
		"":           0,
		"halftime":   0,
	}
	for label, want := range cases {
		assert.Equal(t, want, QuarterRank(label), "label=%q", label)
	}
}

func TestNormalizeQuarter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, QuarterThird, NormalizeQuarter(" 3rdQuarter "))
	assert.Equal(t, QuarterOvertime, NormalizeQuarter("ot"))
	assert.Equal(t, "5th", NormalizeQuarter("5th"))
}

func TestParseLive(t *testing.T) {
	t.Parallel()

	assert.True(t, ParseLive("1"))
	assert.False(t, ParseLive("0"))
	assert.False(t, ParseLive(""))
}

func TestFixtureTeamKey(t *testing.T) {
	t.Parallel()

	f := Fixture{HomeTeamKey: "h", AwayTeamKey: "a"}
	assert.Equal(t, "h", f.TeamKey(SideHome))
	assert.Equal(t, "a", f.TeamKey(SideAway))
	assert.True(t, SideHome.Valid())
	assert.False(t, Side("neutral").Valid())
}
