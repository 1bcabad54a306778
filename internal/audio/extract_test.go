package audio_test

import (
	"math"
	"testing"

	"github.com/lingokit/phrasedeck/internal/audio"
	"github.com/stretchr/testify/require"
)

// sineBuffer builds a mono test buffer of the given duration.
func sineBuffer(t *testing.T, rate int, seconds float64) *audio.Buffer {
	t.Helper()
	frames := int(math.Round(seconds * float64(rate)))
	samples := make([]float64, frames)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / float64(rate))
	}
	return &audio.Buffer{SampleRate: rate, Channels: [][]float64{samples}}
}

func TestExtract_WindowWithinSource(t *testing.T) {
	src := sineBuffer(t, 44100, 3.0)

	seg, err := audio.Extract(src, 0.5, 1.5)
	require.NoError(t, err)
	require.Equal(t, 44100, seg.SampleRate)
	require.Equal(t, 1, seg.NumChannels())
	require.Equal(t, 44100, seg.Frames())
	require.Equal(t, src.Channels[0][22050], seg.Channels[0][0])
}

func TestExtract_PastSourcePadsSilence(t *testing.T) {
	src := sineBuffer(t, 44100, 3.0)

	seg, err := audio.Extract(src, 2.0, 5.0)
	require.NoError(t, err)
	require.Equal(t, int(math.Round(5.0*44100))-int(math.Round(2.0*44100)), seg.Frames())

	// The first second overlaps real audio; everything past 3.0s is zero.
	require.Equal(t, src.Channels[0][2*44100], seg.Channels[0][0])
	for i := 44100; i < seg.Frames(); i++ {
		require.Zero(t, seg.Channels[0][i], "sample %d past the source must be silence", i)
	}
}

func TestExtract_EntirelyPastSource(t *testing.T) {
	src := sineBuffer(t, 8000, 1.0)

	seg, err := audio.Extract(src, 2.0, 2.5)
	require.NoError(t, err)
	require.Equal(t, 4000, seg.Frames())
	for _, s := range seg.Channels[0] {
		require.Zero(t, s)
	}
}

func TestExtract_InvalidRange(t *testing.T) {
	src := sineBuffer(t, 44100, 1.0)

	_, err := audio.Extract(src, 1.0, 1.0)
	require.ErrorIs(t, err, audio.ErrInvalidRange)

	_, err = audio.Extract(src, 2.0, 1.0)
	require.ErrorIs(t, err, audio.ErrInvalidRange)

	_, err = audio.Extract(src, -0.5, 1.0)
	require.ErrorIs(t, err, audio.ErrInvalidRange)
}

func TestExtract_PureAndRepeatable(t *testing.T) {
	src := sineBuffer(t, 22050, 2.0)
	before := append([]float64(nil), src.Channels[0]...)

	first, err := audio.Extract(src, 0.25, 1.75)
	require.NoError(t, err)
	second, err := audio.Extract(src, 0.25, 1.75)
	require.NoError(t, err)

	require.Equal(t, first.Channels, second.Channels)
	require.Equal(t, before, src.Channels[0], "extraction must not mutate the source")

	// Mutating the output must not reach back into the source.
	first.Channels[0][0] = 42
	require.Equal(t, before, src.Channels[0])
}

func TestExtract_MultiChannel(t *testing.T) {
	left := []float64{0.1, 0.2, 0.3, 0.4}
	right := []float64{-0.1, -0.2, -0.3, -0.4}
	src := &audio.Buffer{SampleRate: 4, Channels: [][]float64{left, right}}

	seg, err := audio.Extract(src, 0.25, 0.75)
	require.NoError(t, err)
	require.Equal(t, 2, seg.NumChannels())
	require.Equal(t, []float64{0.2, 0.3}, seg.Channels[0])
	require.Equal(t, []float64{-0.2, -0.3}, seg.Channels[1])
}
