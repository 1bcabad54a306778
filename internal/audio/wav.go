package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	wavPCMFormat  = 1
	wavHeaderSize = 44
)

var (
	// ErrDecode indicates source audio that cannot be decoded.
	ErrDecode = errors.New("audio decode failed")
	// ErrUnsupportedBitDepth indicates a bit depth other than 8 or 16.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// Encode serializes the buffer to a canonical uncompressed PCM WAV
// container: 44-byte header followed by interleaved sample data.
// Samples are clamped to [-1, 1] and scaled to signed integers with
// full scale 2^(bitDepth-1)-1. Deterministic for identical inputs.
func Encode(buf *Buffer, bitDepth int) ([]byte, error) {
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := buf.NumChannels()
	frames := buf.Frames()
	bytesPerSample := bitDepth / 8
	blockAlign := channels * bytesPerSample
	dataSize := frames * blockAlign

	var out bytes.Buffer
	out.Grow(wavHeaderSize + dataSize)

	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(36+dataSize))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(&out, binary.LittleEndian, uint32(16))
	binary.Write(&out, binary.LittleEndian, uint16(wavPCMFormat))
	binary.Write(&out, binary.LittleEndian, uint16(channels))
	binary.Write(&out, binary.LittleEndian, uint32(buf.SampleRate))
	binary.Write(&out, binary.LittleEndian, uint32(buf.SampleRate*blockAlign))
	binary.Write(&out, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&out, binary.LittleEndian, uint16(bitDepth))

	out.WriteString("data")
	binary.Write(&out, binary.LittleEndian, uint32(dataSize))

	maxValue := float64(int(1)<<(bitDepth-1) - 1)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			sample := clamp(buf.Channels[ch][i])
			scaled := int(sample * maxValue)
			if bitDepth == 8 {
				out.WriteByte(byte(int8(scaled)))
			} else {
				binary.Write(&out, binary.LittleEndian, int16(scaled))
			}
		}
	}

	return out.Bytes(), nil
}

// Decode parses an uncompressed PCM WAV container produced by Encode or
// any canonical PCM writer, back into a buffer.
func Decode(data []byte) (*Buffer, error) {
	if len(data) < wavHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE container", ErrDecode)
	}

	var (
		format     uint16
		channels   int
		sampleRate int
		bitDepth   int
		sampleData []byte
		haveFmt    bool
		haveData   bool
	)

	// Walk the chunk list; tolerate chunks other than fmt/data.
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			return nil, fmt.Errorf("%w: truncated %q chunk", ErrDecode, chunkID)
		}
		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrDecode)
			}
			format = binary.LittleEndian.Uint16(data[body : body+2])
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitDepth = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			sampleData = data[body : body+chunkSize]
			haveData = true
		}
		// Chunks are word-aligned.
		offset = body + chunkSize + chunkSize%2
	}

	if !haveFmt || !haveData {
		return nil, fmt.Errorf("%w: missing fmt or data chunk", ErrDecode)
	}
	if format != wavPCMFormat {
		return nil, fmt.Errorf("%w: non-PCM format %d", ErrDecode, format)
	}
	if bitDepth != 8 && bitDepth != 16 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrDecode, bitDepth)
	}
	if channels < 1 || sampleRate < 1 {
		return nil, fmt.Errorf("%w: malformed fmt chunk", ErrDecode)
	}

	bytesPerSample := bitDepth / 8
	blockAlign := channels * bytesPerSample
	frames := len(sampleData) / blockAlign

	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float64, channels),
	}
	for ch := range buf.Channels {
		buf.Channels[ch] = make([]float64, frames)
	}

	maxValue := float64(int(1)<<(bitDepth-1) - 1)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			pos := i*blockAlign + ch*bytesPerSample
			var scaled int
			if bitDepth == 8 {
				scaled = int(int8(sampleData[pos]))
			} else {
				scaled = int(int16(binary.LittleEndian.Uint16(sampleData[pos : pos+2])))
			}
			buf.Channels[ch][i] = clamp(float64(scaled) / maxValue)
		}
	}

	return buf, nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
