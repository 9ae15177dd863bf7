package scoring

import (
	"regexp"
	"strings"
)

var redFlagPatterns = []struct {
	phrase  string
	pattern *regexp.Regexp
}{
	{"wear many hats", regexp.MustCompile(`(?i)\bwear(ing)? (many|multiple|lots of) hats\b`)},
	{"unicorn", regexp.MustCompile(`(?i)\bunicorn\b`)},
	{"miracle worker", regexp.MustCompile(`(?i)\bmiracle workers?\b`)},
	{"rockstar", regexp.MustCompile(`(?i)\brock ?stars?\b`)},
	{"ninja", regexp.MustCompile(`(?i)\bninjas?\b`)},
	{"work hard play hard", regexp.MustCompile(`(?i)\bwork hard,? play hard\b`)},
	{"like a family", regexp.MustCompile(`(?i)\b(like a|one big|we're a) family\b`)},
	{"fast-paced environment", regexp.MustCompile(`(?i)\bfast[- ]paced (environment|startup|team)\b`)},
}

// benefitSynonyms lists phrases that confirm a benefit when the profile names it by its key
var benefitSynonyms = map[string][]string{
	"health insurance": {"health insurance", "medical", "healthcare", "health care", "health benefits"},
	"dental":           {"dental"},
	"vision":           {"vision"},
	"401k":             {"401k", "401(k)", "retirement plan", "retirement match"},
	"pto":              {"pto", "paid time off", "vacation", "time off"},
	"unlimited pto":    {"unlimited pto", "unlimited vacation", "flexible time off"},
	"equity":           {"equity", "stock options", "rsu", "rsus", "ownership stake"},
	"parental leave":   {"parental leave", "maternity", "paternity", "family leave"},
	"remote":           {"remote", "work from home", "wfh"},
	"learning budget":  {"learning budget", "education stipend", "professional development"},
	"bonus":            {"bonus"},
}

// benefitCheck is the outcome of looking for the profile's benefits in the job text
type benefitCheck struct {
	verified   []string
	unverified []string
	preferred  []string
}

func checkBenefits(text string, required, preferred []string) benefitCheck {
	var bc benefitCheck
	lower := strings.ToLower(text)
	for _, b := range required {
		if b = strings.TrimSpace(b); b == "" {
			continue
		}
		if benefitMentioned(lower, b) {
			bc.verified = append(bc.verified, b)
		} else {
			bc.unverified = append(bc.unverified, b)
		}
	}
	for _, b := range preferred {
		if b = strings.TrimSpace(b); b != "" && benefitMentioned(lower, b) {
			bc.preferred = append(bc.preferred, b)
		}
	}
	return bc
}

func benefitMentioned(lowerText, benefit string) bool {
	key := strings.ToLower(benefit)
	if strings.Contains(lowerText, key) {
		return true
	}
	for _, phrase := range benefitSynonyms[key] {
		if strings.Contains(lowerText, phrase) {
			return true
		}
	}
	return false
}

func detectRedFlags(text string) []string {
	var flags []string
	for _, rf := range redFlagPatterns {
		if rf.pattern.MatchString(text) {
			flags = append(flags, rf.phrase)
		}
	}
	return flags
}
