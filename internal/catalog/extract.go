// internal/catalog/extract.go
package catalog

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	ramStoragePattern  = regexp.MustCompile(`(?i)(\d+)\s*/\s*(\d+)\s*(TB|GB)?`)
	terabytePattern    = regexp.MustCompile(`(?i)(\d+)\s*TB`)
	gigabytePattern    = regexp.MustCompile(`(?i)(\d+)\s*GB`)
	bareStoragePattern = regexp.MustCompile(`\b(128|256|512|1024|2048|4096)\b`)

	whitespacePattern  = regexp.MustCompile(`\s+`)
	countryCodePattern = regexp.MustCompile(`\b([A-Z]{2,3})\b`)

	dualSIMPattern = regexp.MustCompile(`(?i)\bsim\s*\+\s*esim\b`)
	eSIMPattern    = regexp.MustCompile(`(?i)\besim\b`)
)

const (
	UnitGb = "Gb"
	UnitTB = "TB"

	SIMTypeESim = "eSim"
	SIMTypeDual = "Sim + eSIM"
)

// ExtractMemory returns the storage size mentioned in a product name, e.g. "256 Gb".
// A RAM/storage pair like "8/256" yields the storage half.
func ExtractMemory(name string) (string, bool) {
	if m := ramStoragePattern.FindStringSubmatch(name); m != nil {
		unit := UnitGb
		if strings.ToUpper(m[3]) == UnitTB {
			unit = UnitTB
		}
		return formatMemory(m[2], unit), true
	}

	if m := terabytePattern.FindStringSubmatch(name); m != nil {
		return formatMemory(m[1], UnitTB), true
	}
	if m := gigabytePattern.FindStringSubmatch(name); m != nil {
		return formatMemory(m[1], UnitGb), true
	}

	if m := bareStoragePattern.FindStringSubmatch(name); m != nil {
		return formatMemory(m[1], UnitGb), true
	}

	return "", false
}

func formatMemory(size, unit string) string {
	return fmt.Sprintf("%s %s", size, unit)
}

// Colors is the canonical color vocabulary as it appears in supplier price lists.
var Colors = []string{
	"Sorta Seafoam", "Sorta Sage", "Space Gray", "Space Black", "Rose Gold",
	"Jet Black", "Light Gold", "Cloud White", "Sky Blue", "Light Blush",
	"Pur Fog", "Blue Ocean", "Green Alpine", "Black Ocean", "Mil Lp",
	"Charcoal", "Obsidian", "Snow", "Hazel", "Porcelain", "Porcelaine",
	"Peony", "Lila", "Black", "Blue", "Red", "Midnight", "Starlight",
	"Purple", "Yellow", "Green", "Pink", "White", "Silver", "Gold",
	"Sp. Gray", "Teal", "Ultramarine", "Desert", "Natural", "Lavender",
	"Sage", "Mist Blue", "Orange", "Star", "Mid", "Plum", "Ink", "Nat",
	"Denim", "Link",
}

type colorMatcher struct {
	name    string
	pattern *regexp.Regexp
}

// colorMatchers holds the vocabulary ordered longest first so compounds win.
var colorMatchers = buildColorMatchers(Colors)

func buildColorMatchers(colors []string) []colorMatcher {
	ordered := make([]string, len(colors))
	copy(ordered, colors)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})

	matchers := make([]colorMatcher, 0, len(ordered))
	for _, c := range ordered {
		matchers = append(matchers, colorMatcher{
			name:    c,
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(c) + `\b`),
		})
	}
	return matchers
}

// ExtractColor returns the canonical color named in a product name.
func ExtractColor(name string) (string, bool) {
	for _, m := range colorMatchers {
		if m.pattern.MatchString(name) {
			return m.name, true
		}
	}
	return "", false
}

// SupportedFlags lists the country flags recognised inside names and country cells.
var SupportedFlags = []string{
	"🇨🇳", "🇺🇸", "🇮🇳", "🇹🇭", "🇦🇪", "🇵🇾", "🇨🇿", "🇩🇪", "🇯🇵", "🇻🇳", "🇸🇬", "🇨🇦",
	"🇧🇷", "🇦🇺", "🇸🇦", "🇭🇰", "🇶🇦", "🇰🇷", "🇬🇧", "🇮🇹", "🇿🇦", "🇮🇩", "🇷🇺", "🇪🇺",
	"🇲🇾", "🇰🇿", "🇨🇱",
}

// countryCodes maps ISO-like codes from supplier sheets to a flag plus code.
var countryCodes = map[string]string{
	"CN": "🇨🇳 CN",
	"US": "🇺🇸 US",
	"AE": "🇦🇪 AE",
	"IN": "🇮🇳 IN",
	"TH": "🇹🇭 TH",
	"PY": "🇵🇾 PY",
	"CZ": "🇨🇿 CZ",
	"DE": "🇩🇪 DE",
	"JP": "🇯🇵 JP",
	"VN": "🇻🇳 VN",
	"SG": "🇸🇬 SG",
	"CA": "🇨🇦 CA",
	"BR": "🇧🇷 BR",
	"AU": "🇦🇺 AU",
	"SA": "🇸🇦 SA",
	"HK": "🇭🇰 HK",
	"QA": "🇶🇦 QA",
	"KR": "🇰🇷 KR",
	"GB": "🇬🇧 GB",
	"IT": "🇮🇹 IT",
	"ZA": "🇿🇦 ZA",
	"ID": "🇮🇩 ID",
}

// ParseCountry normalises the country cell of a standard price list.
func ParseCountry(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	for _, flag := range SupportedFlags {
		if strings.Contains(s, flag) {
			return s, true
		}
	}

	if m := countryCodePattern.FindStringSubmatch(s); m != nil {
		if mapped, ok := countryCodes[m[1]]; ok {
			return mapped, true
		}
	}

	// headphone and stylus rows put a region note in this column
	if strings.Contains(s, "🎧") || strings.Contains(s, "🖊") {
		return s, true
	}

	return "", false
}

// ExtractCountryFlag finds the first supported flag embedded in a product name.
func ExtractCountryFlag(name string) (string, bool) {
	for _, flag := range SupportedFlags {
		if strings.Contains(name, flag) {
			return flag, true
		}
	}
	return "", false
}

// StripFlags removes every supported flag from name and collapses whitespace.
func StripFlags(name string) string {
	for _, flag := range SupportedFlags {
		name = strings.ReplaceAll(name, flag, "")
	}
	return collapseSpaces(name)
}

// ExtractSIMType reads the connectivity annotation from a country/connectivity cell.
func ExtractSIMType(raw string) (string, bool) {
	if dualSIMPattern.MatchString(raw) {
		return SIMTypeDual, true
	}
	if eSIMPattern.MatchString(raw) {
		return SIMTypeESim, true
	}
	return "", false
}

var priceCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", "", "₽", "")

// ParsePrice parses a price cell such as "15 000" or "15000.0" into whole currency units.
// Negative amounts are rejected.
func ParsePrice(raw string) (int64, bool) {
	s := priceCleaner.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return int64(v), true
}

var baseModelMemoryPattern = regexp.MustCompile(`(?i)\s+\d+\s*(GB|TB)\b`)

// BaseModel drops memory and color tokens so variants of one model group together.
func BaseModel(name string) string {
	base := baseModelMemoryPattern.ReplaceAllString(name, "")
	for _, m := range colorMatchers {
		base = m.pattern.ReplaceAllString(base, "")
	}
	return collapseSpaces(base)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
