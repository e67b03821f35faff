// Package sexagesimal formats and parses angles in the compact sexagesimal
// notation used for cache filenames.
//
// Right ascension is rendered in hours of time as HHMMSS.sss, declination in
// degrees as a signed DDMMSS.cc. Both forms are fixed width so filenames sort
// and parse deterministically.
package sexagesimal

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// millisPerDegree converts degrees to milliseconds of time (RA axis).
	millisPerDegree = 240_000
	// centisPerDegree converts degrees to centiarcseconds (Dec axis).
	centisPerDegree = 360_000

	millisPerTurn = 24 * 3600 * 1000
)

// RoundHMS normalizes an angle in degrees into [0, 360) and rounds it to the
// HMS codec precision (one millisecond of time).
func RoundHMS(deg float64) float64 {
	return float64(hmsMillis(deg)) / millisPerDegree
}

// RoundDMS rounds an angle in degrees to the DMS codec precision (one
// hundredth of an arcsecond).
func RoundDMS(deg float64) float64 {
	neg, centis := dmsCentis(deg)
	d := float64(centis) / centisPerDegree
	if neg {
		return -d
	}
	return d
}

// FormatHMS renders an angle in degrees as HHMMSS.sss in hours of time,
// normalized into [0, 360).
func FormatHMS(deg float64) string {
	ms := hmsMillis(deg)
	sec := ms % 60_000
	min := ms / 60_000 % 60
	hour := ms / 3_600_000
	return fmt.Sprintf("%02d%02d%02d.%03d", hour, min, sec/1000, sec%1000)
}

// ParseHMS is the inverse of FormatHMS. It accepts only the exact fixed-width
// form and returns the angle in degrees.
func ParseHMS(s string) (float64, error) {
	if len(s) != 10 || s[6] != '.' {
		return 0, fmt.Errorf("malformed HMS angle %q", s)
	}
	hour, err1 := strconv.Atoi(s[0:2])
	min, err2 := strconv.Atoi(s[2:4])
	sec, err3 := strconv.ParseFloat(s[4:], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, fmt.Errorf("malformed HMS angle %q", s)
	}
	if hour >= 24 || min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("HMS angle %q out of range", s)
	}
	ms := int64(hour)*3_600_000 + int64(min)*60_000 + int64(math.Round(sec*1000))
	return float64(ms) / millisPerDegree, nil
}

// FormatDMS renders an angle in degrees as a signed DDMMSS.cc.
func FormatDMS(deg float64) string {
	neg, cs := dmsCentis(deg)
	sign := byte('+')
	if neg {
		sign = '-'
	}
	sec := cs % 6000
	min := cs / 6000 % 60
	d := cs / 360_000
	return fmt.Sprintf("%c%02d%02d%02d.%02d", sign, d, min, sec/100, sec%100)
}

// ParseDMS is the inverse of FormatDMS. The sign is mandatory.
func ParseDMS(s string) (float64, error) {
	if len(s) != 10 || (s[0] != '+' && s[0] != '-') || s[7] != '.' {
		return 0, fmt.Errorf("malformed DMS angle %q", s)
	}
	d, err1 := strconv.Atoi(s[1:3])
	min, err2 := strconv.Atoi(s[3:5])
	sec, err3 := strconv.ParseFloat(s[5:], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, fmt.Errorf("malformed DMS angle %q", s)
	}
	if min >= 60 || sec >= 60 {
		return 0, fmt.Errorf("DMS angle %q out of range", s)
	}
	cs := int64(d)*360_000 + int64(min)*6000 + int64(math.Round(sec*100))
	deg := float64(cs) / centisPerDegree
	if s[0] == '-' {
		deg = -deg
	}
	return deg, nil
}

// hmsMillis converts degrees to milliseconds of time in [0, 24h).
func hmsMillis(deg float64) int64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	ms := int64(math.Round(deg * millisPerDegree))
	if ms >= millisPerTurn {
		ms -= millisPerTurn
	}
	return ms
}

// dmsCentis converts degrees to an unsigned centiarcsecond count plus sign.
func dmsCentis(deg float64) (neg bool, centis int64) {
	if deg < 0 || math.Signbit(deg) {
		neg = true
		deg = -deg
	}
	centis = int64(math.Round(deg * centisPerDegree))
	if centis == 0 {
		neg = false
	}
	return neg, centis
}
