package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// minAnnualAmount filters out dollar amounts too small to be a salary ("$50 stipend")
const minAnnualAmount = 1000

// CompRange is a compensation range parsed from text. A nil side was not found.
type CompRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// IsZero reports whether neither side was parsed
func (c CompRange) IsZero() bool {
	return c.Min == nil && c.Max == nil
}

// Upper returns the best known upper bound: Max when set, otherwise Min
func (c CompRange) Upper() *int {
	if c.Max != nil {
		return c.Max
	}
	return c.Min
}

const moneyToken = `\$\s?(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*([kKmM])?\b`

var (
	compRangePattern  = regexp.MustCompile(moneyToken + `\s*(?:-|–|—|to)\s*\$?\s?(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*([kKmM])?\b`)
	compSinglePattern = regexp.MustCompile(moneyToken)
)

// ParseCompFromText recognizes "$150,000", "$150k" and "$150,000 - $200,000" style
// compensation in free text. A range fills both sides; a single amount fills Min only.
func ParseCompFromText(text string) CompRange {
	for _, groups := range compRangePattern.FindAllStringSubmatch(text, -1) {
		lowMag, highMag := groups[2], groups[4]
		if lowMag == "" {
			// "$150-200k" shares the trailing magnitude
			lowMag = highMag
		}
		low, okLow := parseAmount(groups[1], lowMag)
		high, okHigh := parseAmount(groups[3], highMag)
		if !okLow || !okHigh {
			continue
		}
		if low > high {
			low, high = high, low
		}
		return CompRange{Min: &low, Max: &high}
	}

	for _, groups := range compSinglePattern.FindAllStringSubmatch(text, -1) {
		if amount, ok := parseAmount(groups[1], groups[2]); ok {
			return CompRange{Min: &amount}
		}
	}

	return CompRange{}
}

func parseAmount(number, magnitude string) (int, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(magnitude) {
	case "k":
		v *= 1e3
	case "m":
		v *= 1e6
	}
	if v < minAnnualAmount {
		return 0, false
	}
	return int(v + 0.5), true
}
