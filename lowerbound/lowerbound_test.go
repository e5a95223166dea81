package lowerbound

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/warpsearch/dtw"
)

func TestKim(t *testing.T) {
	tests := []struct {
		name     string
		q, c     []float64
		expected float64
	}{
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Endpoints", []float64{0, 9, 9, 3}, []float64{4, 1, 1, 0}, 5},
		{"SingleVsSingle", []float64{2}, []float64{5}, 3},
		{"SingleVsMany", []float64{1}, []float64{4, 1, 1, 5}, 5},
		{"EmptySide", nil, []float64{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Kim(tt.q, tt.c), 1e-12)
		})
	}
}

func TestKimSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for range 100 {
		q := noiseSeries(rng, 48, 0)
		c := noiseSeries(rng, 48, 2)
		d := dtw.Distance(q, c, dtw.None())
		assert.LessOrEqual(t, Kim(q, c), d+1e-9)
	}
}

func TestPAA(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		// Segment means (1.5, 3.5) vs (3.5, 5.5): 2*4 + 2*4 = 16.
		got, err := PAA([]float64{1, 2, 3, 4}, []float64{3, 4, 5, 6}, 2)
		require.NoError(t, err)
		assert.InDelta(t, 4, got, 1e-12)
	})

	t.Run("UnevenLastSegment", func(t *testing.T) {
		// Five elements over two segments: widths 3 and 2.
		got, err := PAA([]float64{0, 0, 0, 0, 0}, []float64{3, 3, 3, 6, 6}, 2)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(3*9+2*36), got, 1e-12)
	})

	t.Run("Identical", func(t *testing.T) {
		s := []float64{1, 2, 3, 4, 5}
		got, err := PAA(s, s, 2)
		require.NoError(t, err)
		assert.InDelta(t, 0, got, 1e-12)
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := PAA([]float64{1, 2}, []float64{1, 2, 3}, 1)
		var lm *ErrLengthMismatch
		require.ErrorAs(t, err, &lm)
		assert.Equal(t, 2, lm.Query)
		assert.Equal(t, 3, lm.Candidate)
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := PAA(nil, nil, 1)
		require.NoError(t, err)
		assert.InDelta(t, 0, got, 1e-12)
	})
}

func TestPAASoundness(t *testing.T) {
	// PAA lower-bounds the pointwise alignment: DTW under Band(0).
	rng := rand.New(rand.NewSource(22))
	for range 100 {
		q := noiseSeries(rng, 128, 0)
		c := noiseSeries(rng, 128, 0)
		d := dtw.Distance(q, c, dtw.Band(0))
		for _, segments := range []int{1, 4, coarseSegments(len(q))} {
			got, err := PAA(q, c, segments)
			require.NoError(t, err)
			assert.LessOrEqual(t, got, d+1e-9, "segments %d", segments)
		}
	}
}

func TestCascadeSoundness(t *testing.T) {
	// Every cascade stage must stay below the DTW distance under the
	// matching constraint, or pruning would discard genuine neighbors.
	rng := rand.New(rand.NewSource(27))
	for _, radius := range []int{-1, 0, 3} {
		constraint := dtw.None()
		if radius >= 0 {
			constraint = dtw.Band(radius)
		}
		for range 50 {
			q := noiseSeries(rng, 64, 0)
			c := noiseSeries(rng, 64, 2)
			d := dtw.Distance(q, c, constraint)
			bound, level := Cascade(q, c, radius, math.Inf(1))
			require.Equal(t, LevelNone, level)
			assert.LessOrEqual(t, bound, d+1e-9, "radius %d", radius)
		}
	}
}

func TestEnvelope(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	s := noiseSeries(rng, 64, 0)

	for _, radius := range []int{0, 1, 3, 10, 63, 200, -1} {
		upper, lower := Envelope(s, radius)
		require.Len(t, upper, len(s))
		require.Len(t, lower, len(s))
		for i := range s {
			wantHi, wantLo := naiveWindowExtrema(s, i, radius)
			assert.InDelta(t, wantHi, upper[i], 1e-12, "radius %d pos %d", radius, i)
			assert.InDelta(t, wantLo, lower[i], 1e-12, "radius %d pos %d", radius, i)
		}
	}
}

func TestEnvelopeEmpty(t *testing.T) {
	upper, lower := Envelope(nil, 3)
	assert.Nil(t, upper)
	assert.Nil(t, lower)
}

func TestKeoghSoundness(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	for _, radius := range []int{0, 2, 5, -1} {
		constraint := dtw.Band(radius)
		if radius < 0 {
			constraint = dtw.None()
		}
		for range 50 {
			q := noiseSeries(rng, 48, 0)
			c := noiseSeries(rng, 48, 1)
			d := dtw.Distance(q, c, constraint)

			keogh, err := Keogh(q, c, radius)
			require.NoError(t, err)
			assert.LessOrEqual(t, keogh, d+1e-9, "radius %d", radius)

			improved, err := Improved(q, c, radius)
			require.NoError(t, err)
			assert.LessOrEqual(t, improved, d+1e-9, "radius %d", radius)
		}
	}
}

func TestImprovedNeverLooser(t *testing.T) {
	rng := rand.New(rand.NewSource(25))
	for range 50 {
		q := noiseSeries(rng, 40, 0)
		c := noiseSeries(rng, 40, 1)
		for _, radius := range []int{0, 3, -1} {
			forward, err := Keogh(q, c, radius)
			require.NoError(t, err)
			backward, err := Keogh(c, q, radius)
			require.NoError(t, err)
			improved, err := Improved(q, c, radius)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, improved+1e-12, forward)
			assert.GreaterOrEqual(t, improved+1e-12, backward)
		}
	}
}

func TestKeoghLengthMismatch(t *testing.T) {
	_, err := Keogh([]float64{1}, []float64{1, 2}, 1)
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)

	_, err = Improved([]float64{1}, []float64{1, 2}, 1)
	require.ErrorAs(t, err, &lm)
}

func TestCascadePrunes(t *testing.T) {
	q := []float64{0, 0, 0, 0}
	c := []float64{9, 9, 9, 9}

	// Kim alone proves the distance exceeds a tiny threshold.
	bound, level := Cascade(q, c, -1, 1)
	assert.Equal(t, LevelKim, level)
	assert.GreaterOrEqual(t, bound, 1.0)

	// An unreachable threshold never prunes.
	bound, level = Cascade(q, c, -1, math.Inf(1))
	assert.Equal(t, LevelNone, level)
	assert.Greater(t, bound, 0.0)
	assert.LessOrEqual(t, bound, dtw.Distance(q, c, dtw.None())+1e-9)
}

func TestCascadeMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(26))
	for range 50 {
		q := noiseSeries(rng, 32, 0)
		c := noiseSeries(rng, 32, 1)

		tightest, level := Cascade(q, c, 3, math.Inf(1))
		require.Equal(t, LevelNone, level)

		// Any threshold at or below the tightest bound must prune.
		for _, thr := range []float64{tightest, tightest / 2, 0} {
			_, level := Cascade(q, c, 3, thr)
			assert.NotEqual(t, LevelNone, level, "threshold %g", thr)
		}
	}
}

func TestCascadeUnequalLengths(t *testing.T) {
	// Length-bound stages are skipped; only Kim applies.
	q := []float64{0, 0, 0}
	c := []float64{5, 5}

	bound, level := Cascade(q, c, -1, 1)
	assert.Equal(t, LevelKim, level)
	assert.InDelta(t, math.Sqrt(50), bound, 1e-12)

	bound, level = Cascade(q, c, -1, math.Inf(1))
	assert.Equal(t, LevelNone, level)
	assert.InDelta(t, math.Sqrt(50), bound, 1e-12)
}

func TestCascadeLevelStrings(t *testing.T) {
	assert.Equal(t, "none", LevelNone.String())
	assert.Equal(t, "kim", LevelKim.String())
	assert.Equal(t, "paa", LevelPAA.String())
	assert.Equal(t, "keogh", LevelKeogh.String())
	assert.Equal(t, "improved", LevelImproved.String())
}

// noiseSeries produces an i.i.d. uniform series around the given level.
// Independent noise keeps warping gains small, which is the regime the
// cascade's estimators are designed for.
func noiseSeries(rng *rand.Rand, n int, level float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = level + rng.Float64()
	}
	return s
}

func naiveWindowExtrema(s []float64, i, radius int) (hi, lo float64) {
	start, end := 0, len(s)-1
	if radius >= 0 {
		if i-radius > start {
			start = i - radius
		}
		if i+radius < end {
			end = i + radius
		}
	}
	hi, lo = s[start], s[start]
	for j := start + 1; j <= end; j++ {
		if s[j] > hi {
			hi = s[j]
		}
		if s[j] < lo {
			lo = s[j]
		}
	}
	return hi, lo
}
