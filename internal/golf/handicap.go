package golf

import "math"

// baseSlope is the neutral slope rating used by the course handicap formula.
const baseSlope = 113

// CourseHandicap converts a raw handicap index into whole allowance strokes
// for a course. Negative allowances are clamped to zero; a scratch-or-better
// player receives no strokes.
func CourseHandicap(index float64, slope int, rating float64, totalPar int) int {
	ch := int(math.Round(index*float64(slope)/baseSlope + (rating - float64(totalPar))))
	if ch < 0 {
		return 0
	}
	return ch
}

// AllowanceStrokes returns how many handicap strokes a player with the given
// course handicap receives on a hole with the given stroke index (1 = hardest).
// Strokes are spread evenly across all 18 holes before doubling up on the
// hardest ones.
func AllowanceStrokes(received, strokeIndex int) int {
	extra := 0
	if strokeIndex <= received%18 {
		extra = 1
	}
	return received/18 + extra
}

// StablefordPoints scores a single hole against handicap-adjusted par.
// The points table is fixed: albatross-or-better 4, net birdie 3, net par 2,
// net bogey 1, anything worse 0.
func StablefordPoints(strokes, par, allowance int) int {
	diff := strokes - (par + allowance)
	switch {
	case diff <= -2:
		return 4
	case diff == -1:
		return 3
	case diff == 0:
		return 2
	case diff == 1:
		return 1
	default:
		return 0
	}
}
