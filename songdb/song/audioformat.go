package song

import (
	"fmt"
	"strconv"
	"strings"
)

// SampleFormat is the sample encoding of an audio stream.
// The zero value means "undefined" and acts as a wildcard in masks.
type SampleFormat uint8

const (
	SampleUndefined SampleFormat = 0
	SampleS8        SampleFormat = 8
	SampleS16       SampleFormat = 16
	SampleS24       SampleFormat = 24
	SampleS32       SampleFormat = 32
	SampleFloat     SampleFormat = 0xe0
	SampleDSD       SampleFormat = 0xe1
)

func (f SampleFormat) String() string {
	switch f {
	case SampleUndefined:
		return "*"
	case SampleFloat:
		return "f"
	case SampleDSD:
		return "dsd"
	default:
		return strconv.Itoa(int(f))
	}
}

// AudioFormat describes the PCM parameters of a song. Zero fields are
// wildcards when the format is used as a mask.
type AudioFormat struct {
	SampleRate   uint32
	SampleFormat SampleFormat
	Channels     uint8
}

// IsDefined reports whether all three fields are set.
func (f AudioFormat) IsDefined() bool {
	return f.SampleRate != 0 && f.SampleFormat != SampleUndefined && f.Channels != 0
}

func (f AudioFormat) String() string {
	rate := "*"
	if f.SampleRate != 0 {
		rate = strconv.FormatUint(uint64(f.SampleRate), 10)
	}
	channels := "*"
	if f.Channels != 0 {
		channels = strconv.Itoa(int(f.Channels))
	}
	return rate + ":" + f.SampleFormat.String() + ":" + channels
}

// MatchMask reports whether other is compatible with f, treating each
// zero field of f as a wildcard.
func (f AudioFormat) MatchMask(other AudioFormat) bool {
	if f.SampleRate != 0 && f.SampleRate != other.SampleRate {
		return false
	}
	if f.SampleFormat != SampleUndefined && f.SampleFormat != other.SampleFormat {
		return false
	}
	if f.Channels != 0 && f.Channels != other.Channels {
		return false
	}
	return true
}

const maxSampleRate = 768000 * 8

// ParseAudioFormat parses a "rate:format:channels" string. With mask
// enabled, each field may be "*" to leave it undefined.
func ParseAudioFormat(s string, mask bool) (AudioFormat, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return AudioFormat{}, fmt.Errorf("malformed audio format: %s", s)
	}

	var f AudioFormat

	if mask && parts[0] == "*" {
		f.SampleRate = 0
	} else {
		rate, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil || rate == 0 || rate > maxSampleRate {
			return AudioFormat{}, fmt.Errorf("invalid sample rate: %s", parts[0])
		}
		f.SampleRate = uint32(rate)
	}

	format, err := parseSampleFormat(parts[1], mask)
	if err != nil {
		return AudioFormat{}, err
	}
	f.SampleFormat = format

	if mask && parts[2] == "*" {
		f.Channels = 0
	} else {
		channels, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil || channels == 0 || channels > 8 {
			return AudioFormat{}, fmt.Errorf("invalid channel count: %s", parts[2])
		}
		f.Channels = uint8(channels)
	}

	return f, nil
}

func parseSampleFormat(s string, mask bool) (SampleFormat, error) {
	switch s {
	case "*":
		if !mask {
			break
		}
		return SampleUndefined, nil
	case "8":
		return SampleS8, nil
	case "16":
		return SampleS16, nil
	case "24":
		return SampleS24, nil
	case "32":
		return SampleS32, nil
	case "f":
		return SampleFloat, nil
	case "dsd":
		return SampleDSD, nil
	}
	return SampleUndefined, fmt.Errorf("invalid sample format: %s", s)
}
