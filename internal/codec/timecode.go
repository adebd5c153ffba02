package codec

import (
	"math"
	"strconv"
	"strings"
)

// FramesFromTime converts a time string to a frame count at fps.
// Accepted forms are plain frames ("250"), clock time ("HH:MM:SS.mmm",
// "MM:SS.mmm", "SS.mmm") and SMPTE ("HH:MM:SS:FF" or "HH:MM:SS;FF").
// Malformed input, or a time form with a non-positive fps, yields 0.
func FramesFromTime(s string, fps float64) int {
	n, _ := ParseFrames(s, fps)
	return n
}

// ParseFrames is FramesFromTime reporting whether s was understood.
// Plain frame counts need no fps; the other forms need fps > 0.
func ParseFrames(s string, fps float64) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if fps <= 0 {
		return 0, false
	}

	// SMPTE: the last separator before the frame field is ':' or ';'
	// and there are four fields.
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == ';' })
	if len(fields) == 4 && !strings.Contains(s, ".") {
		h, errH := strconv.Atoi(fields[0])
		m, errM := strconv.Atoi(fields[1])
		sec, errS := strconv.Atoi(fields[2])
		f, errF := strconv.Atoi(fields[3])
		if errH != nil || errM != nil || errS != nil || errF != nil {
			return 0, false
		}
		return int(math.Round(float64(h*3600+m*60+sec)*fps)) + f, true
	}

	if len(fields) < 1 || len(fields) > 3 || strings.Contains(s, ";") {
		return 0, false
	}
	var seconds float64
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		seconds = seconds*60 + v
	}
	return int(math.Round(seconds * fps)), true
}
