package gathermate

import "math"

const (
	// MaxCoord is the largest fraction that fits the 4-digit coordinate fields.
	MaxCoord = 0.9999

	xField = 1_000_000
	yField = 100
	scale  = 10000
)

// Encode packs map fractions x and y into a GatherMate2 location key:
// floor(x*10000+0.5)*1000000 + floor(y*10000+0.5)*100. Inputs are clamped
// to [0, MaxCoord].
func Encode(x, y float64) int64 {
	return quantize(x)*xField + quantize(y)*yField
}

// Decode returns the fractions packed into a location key by Encode.
func Decode(loc int64) (x, y float64) {
	return float64(loc/xField) / scale, float64(loc%xField/yField) / scale
}

func quantize(v float64) int64 {
	if v > MaxCoord {
		v = MaxCoord
	}
	if v < 0 {
		v = 0
	}
	return int64(math.Floor(v*scale + 0.5))
}
