package golf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseHandicap(t *testing.T) {
	// index 10.0, slope 125, rating 72.0, total par 72 -> round(10*125/113) = 11
	assert.Equal(t, 11, CourseHandicap(10.0, 125, 72.0, 72))

	// Scratch player receives nothing.
	assert.Equal(t, 0, CourseHandicap(0, 125, 72.0, 72))

	// Rating below par can push the allowance negative; clamp to zero.
	assert.Equal(t, 0, CourseHandicap(1.0, 113, 68.0, 72))

	// Rating above par adds strokes.
	assert.Equal(t, 13, CourseHandicap(10.0, 125, 74.0, 72))
}

func TestCourseHandicapMonotonic(t *testing.T) {
	prev := -1
	for index := 0.0; index <= 36.0; index += 0.5 {
		ch := CourseHandicap(index, 125, 72.0, 72)
		assert.GreaterOrEqual(t, ch, 0)
		assert.GreaterOrEqual(t, ch, prev, "course handicap must not decrease as index grows")
		prev = ch
	}
}

func TestAllowanceStrokes(t *testing.T) {
	// 11 received strokes: stroke indexes 1-11 get one stroke, 12-18 none.
	assert.Equal(t, 1, AllowanceStrokes(11, 1))
	assert.Equal(t, 1, AllowanceStrokes(11, 11))
	assert.Equal(t, 0, AllowanceStrokes(11, 12))
	assert.Equal(t, 0, AllowanceStrokes(11, 18))

	// 20 received strokes: everyone gets one, the two hardest get two.
	assert.Equal(t, 2, AllowanceStrokes(20, 1))
	assert.Equal(t, 2, AllowanceStrokes(20, 2))
	assert.Equal(t, 1, AllowanceStrokes(20, 3))

	assert.Equal(t, 0, AllowanceStrokes(0, 1))
}

func TestStablefordPoints(t *testing.T) {
	// No allowance: fixed table against raw par.
	assert.Equal(t, 4, StablefordPoints(2, 4, 0))
	assert.Equal(t, 3, StablefordPoints(3, 4, 0))
	assert.Equal(t, 2, StablefordPoints(4, 4, 0))
	assert.Equal(t, 1, StablefordPoints(5, 4, 0))
	assert.Equal(t, 0, StablefordPoints(6, 4, 0))
	assert.Equal(t, 0, StablefordPoints(9, 4, 0))

	// An allowance stroke shifts the whole table by one.
	assert.Equal(t, 2, StablefordPoints(5, 4, 1))
}

func TestStablefordPointsMonotonic(t *testing.T) {
	prev := 5
	for strokes := 1; strokes <= 12; strokes++ {
		pts := StablefordPoints(strokes, 4, 1)
		assert.GreaterOrEqual(t, pts, 0)
		assert.LessOrEqual(t, pts, 4)
		assert.LessOrEqual(t, pts, prev, "points must not increase with more strokes")
		prev = pts
	}
}
