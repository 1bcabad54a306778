// Package audio holds the decoded-audio buffer type, the segment
// extractor, and the PCM WAV codec.
package audio

// Buffer is decoded audio: per-channel sample sequences of real-valued
// samples in [-1, 1], all channels the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float64
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}
