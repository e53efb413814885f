package pngo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdam7PassDimensionsForSmallImage(t *testing.T) {
	// A 2x2 image: only passes 0, 5, and 6 own any pixels, and between
	// them they own exactly the image's 4 pixels (spec §8, invariant 5).
	total := 0
	for _, p := range adam7Passes {
		w, h := p.dimensions(2, 2)
		total += w * h
	}
	assert.Equal(t, 4, total)

	w0, h0 := adam7Passes[0].dimensions(2, 2)
	assert.Equal(t, 1, w0)
	assert.Equal(t, 1, h0)

	w1, h1 := adam7Passes[1].dimensions(2, 2)
	assert.Equal(t, 0, w1*h1, "pass 1 starts at column 4, out of bounds for width 2")

	w6, h6 := adam7Passes[6].dimensions(2, 2)
	assert.Equal(t, 2, w6)
	assert.Equal(t, 1, h6)
}

func TestAdam7PassDimensionsCoverAnEightByEightImage(t *testing.T) {
	total := 0
	for _, p := range adam7Passes {
		w, h := p.dimensions(8, 8)
		total += w * h
	}
	assert.Equal(t, 64, total)
}

func TestPassesForNonInterlaced(t *testing.T) {
	passes := passesFor(0)
	assert.Len(t, passes, 1)
	w, h := passes[0].dimensions(5, 3)
	assert.Equal(t, 5, w)
	assert.Equal(t, 3, h)
}

func TestPassesForInterlaced(t *testing.T) {
	assert.Len(t, passesFor(1), 7)
}

func TestCeilDivHandlesNonPositiveNumerator(t *testing.T) {
	assert.Equal(t, 0, ceilDiv(0, 4))
	assert.Equal(t, 0, ceilDiv(-1, 4))
	assert.Equal(t, 1, ceilDiv(1, 4))
	assert.Equal(t, 2, ceilDiv(5, 4))
}
