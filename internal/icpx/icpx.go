// Package icpx holds ICP unit conversions: fixed-point e8s amounts,
// display formatting, and ledger nanosecond timestamps.
package icpx

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// E8sPerICP is the fixed-point scale of the ledger: 1 ICP = 10^8 e8s.
const E8sPerICP = 100_000_000

// Decimals is the number of fractional digits carried by an e8s amount.
const Decimals = 8

// ToE8s converts a display amount to e8s, flooring anything finer than
// 10^-8 ICP. Round-tripping amounts with more than 8 decimal digits is lossy.
func ToE8s(icp float64) int64 {
	scaled := icp * E8sPerICP
	// amounts within the 8-decimal scale land a float ulp away from an
	// integer; snap those instead of flooring the artifact away
	if r := math.Round(scaled); math.Abs(scaled-r) < 1e-3 {
		return int64(r)
	}
	return int64(math.Floor(scaled))
}

// FromE8s converts an e8s amount to a display amount.
func FromE8s(e8s int64) float64 {
	return float64(e8s) / E8sPerICP
}

// Format renders an e8s amount for display. Zero renders as "Free";
// anything else keeps at least two and at most eight fractional digits,
// with an " ICP" suffix.
func Format(e8s int64) string {
	if e8s == 0 {
		return "Free"
	}
	s := strconv.FormatFloat(FromE8s(e8s), 'f', Decimals, 64)
	s = strings.TrimRight(s, "0")
	if i := strings.IndexByte(s, '.'); len(s)-i-1 < 2 {
		s += strings.Repeat("0", 2-(len(s)-i-1))
	}
	return s + " ICP"
}

// NanosToTime converts a ledger timestamp (nanoseconds since epoch) to a
// host time.
func NanosToTime(ns int64) time.Time {
	return time.Unix(0, ns)
}

// TimeToNanos converts a host time to a ledger timestamp.
func TimeToNanos(t time.Time) int64 {
	return t.UnixNano()
}

// FormatFileSize renders a byte count with binary units and up to two
// fractional digits, e.g. 1536 -> "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB", "TB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(units) {
		i = len(units) - 1
	}
	v := float64(bytes) / math.Pow(1024, float64(i))
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + " " + units[i]
}
