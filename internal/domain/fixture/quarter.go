package fixture

import "strings"

const (
	QuarterFirst    = "1st"
	QuarterSecond   = "2nd"
	QuarterThird    = "3rd"
	QuarterFourth   = "4th"
	QuarterOvertime = "OT"
)

var quarterRanks = map[string]int{
	QuarterFirst:    1,
	QuarterSecond:   2,
	QuarterThird:    3,
	QuarterFourth:   4,
	QuarterOvertime: 5,
}

// QuarterRank orders quarter labels for display; unknown labels rank 0.
func QuarterRank(label string) int {
	return quarterRanks[NormalizeQuarter(label)]
}

// NormalizeQuarter maps provider spellings such as "1stQuarter" or
// "Overtime" onto the stored labels. Unrecognized labels are returned trimmed.
func NormalizeQuarter(label string) string {
	trimmed := strings.TrimSpace(label)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "1st"):
		return QuarterFirst
	case strings.HasPrefix(lower, "2nd"):
		return QuarterSecond
	case strings.HasPrefix(lower, "3rd"):
		return QuarterThird
	case strings.HasPrefix(lower, "4th"):
		return QuarterFourth
	case lower == "ot" || strings.HasPrefix(lower, "overtime"):
		return QuarterOvertime
	default:
		return trimmed
	}
}
