package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const lbsPerKg = 0.453592

// Paired loads ("95/65 lbs") must convert before singles so the single
// pattern cannot eat half of a pair.
var (
	pairedLbsRE = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)\s*(?:lbs?|pounds?)\b`)
	singleLbsRE = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:lbs?|pounds?)\b`)
	clockRE     = regexp.MustCompile(`^(\d+):([0-5]\d)(?::([0-5]\d))?$`)
)

// LbsToKg converts pounds to kilograms rounded to one decimal.
func LbsToKg(lbs float64) float64 {
	return math.Round(lbs*lbsPerKg*10) / 10
}

// KgToLbs is the inverse conversion, also rounded to one decimal.
func KgToLbs(kg float64) float64 {
	return math.Round(kg/lbsPerKg*10) / 10
}

func formatKg(kg float64) string {
	return strconv.FormatFloat(kg, 'f', 1, 64)
}

// ConvertWeights rewrites every pound load in a text field to kilograms.
// "Thrusters 95/65 lbs" becomes "Thrusters 43.1/29.5 kg".
func ConvertWeights(s string) string {
	s = pairedLbsRE.ReplaceAllStringFunc(s, func(m string) string {
		parts := pairedLbsRE.FindStringSubmatch(m)
		rx, _ := strconv.ParseFloat(parts[1], 64)
		scaled, _ := strconv.ParseFloat(parts[2], 64)
		return fmt.Sprintf("%s/%s kg", formatKg(LbsToKg(rx)), formatKg(LbsToKg(scaled)))
	})
	s = singleLbsRE.ReplaceAllStringFunc(s, func(m string) string {
		parts := singleLbsRE.FindStringSubmatch(m)
		lbs, _ := strconv.ParseFloat(parts[1], 64)
		return formatKg(LbsToKg(lbs)) + " kg"
	})
	return s
}

// ClockToSeconds parses "mm:ss" (or "h:mm:ss") into seconds.
func ClockToSeconds(s string) (int, error) {
	m := clockRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, eris.Errorf("units: malformed clock value %q", s)
	}
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	if m[3] == "" {
		return a*60 + b, nil
	}
	c, _ := strconv.Atoi(m[3])
	return a*3600 + b*60 + c, nil
}

// SecondsToClock renders seconds as "mm:ss", or "h:mm:ss" past the hour.
func SecondsToClock(sec int) string {
	if sec >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
	}
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}
