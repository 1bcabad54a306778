package audio

import (
	"errors"
	"math"
)

// ErrInvalidRange indicates a malformed extraction window.
var ErrInvalidRange = errors.New("invalid extraction range")

// Extract returns a new buffer holding the samples in
// [round(start*rate), round(end*rate)), same channel count and sample
// rate as the source. A window extending past the source is filled with
// silence rather than truncated, so the output length depends only on
// the requested bounds.
func Extract(src *Buffer, start, end float64) (*Buffer, error) {
	if start < 0 || end <= start {
		return nil, ErrInvalidRange
	}

	rate := float64(src.SampleRate)
	startSample := int(math.Round(start * rate))
	endSample := int(math.Round(end * rate))
	length := endSample - startSample

	out := &Buffer{
		SampleRate: src.SampleRate,
		Channels:   make([][]float64, src.NumChannels()),
	}
	for ch, data := range src.Channels {
		segment := make([]float64, length)
		for i := 0; i < length; i++ {
			if idx := startSample + i; idx < len(data) {
				segment[i] = data[idx]
			}
		}
		out.Channels[ch] = segment
	}
	return out, nil
}
