// internal/catalog/taxonomy.go
package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type parentRule struct {
	match  Matcher
	parent string
}

// parentRules groups leaf categories under navigation brands. The order is both
// precedence and the order parents are presented in.
var parentRules = []parentRule{
	{Contains("iPhone", "iPad", "MacBook", "Mac mini", "Apple", "AirPods", "Magic Keyboard"), "Apple"},
	{Contains("Samsung"), "Samsung"},
	{Contains("Google", "Pixel"), "Google Pixel"},
	{Contains("Xiaomi"), "Xiaomi"},
	{Contains("Redmi"), "Redmi"},
	{Contains("POCO"), "POCO"},
	{Contains("Honor"), "Honor"},
	{Contains("Huawei"), "Huawei"},
	{Contains("Vivo"), "Vivo"},
	{Contains("Realme"), "Realme"},
	{Contains("Yandex"), "Yandex"},
	{Contains("Meta"), "Meta Quest"},
	{Contains("Nintendo"), "Nintendo"},
	{Contains("Valve"), "Valve"},
	{Contains("Sony"), "Sony"},
	{Contains("GoPro"), "GoPro"},
	{Contains("Insta360"), "Insta360"},
	{Contains("Garmin"), "Garmin"},
}

// Parent maps a leaf category to its navigation brand. Leaves of brands without a
// rule use their first capitalised word.
func Parent(leaf string) string {
	for _, r := range parentRules {
		if r.match(leaf) {
			return r.parent
		}
	}
	for _, word := range strings.Fields(leaf) {
		if r := []rune(word); unicode.IsUpper(r[0]) {
			return word
		}
	}
	return Accessories
}

// KnownBrands maps an uppercased brand token from sheet headers to its display name.
var KnownBrands = map[string]string{
	"HONOR":    "Honor",
	"DYSON":    "Dyson",
	"HUAWEI":   "Huawei",
	"VIVO":     "Vivo",
	"REALME":   "Realme",
	"XIAOMI":   "Xiaomi",
	"SAMSUNG":  "Samsung",
	"APPLE":    "Apple",
	"GOOGLE":   "Google Pixel",
	"META":     "Meta Quest",
	"NINTENDO": "Nintendo",
	"VALVE":    "Valve",
	"SONY":     "Sony",
	"GOPRO":    "GoPro",
	"INSTA360": "Insta360",
	"GARMIN":   "Garmin",
	"YANDEX":   "Yandex",
	"REDMI":    "Redmi",
	"POCO":     "POCO",
}

// IsBrandHeader reports whether text names a known brand on its own or contains one.
func IsBrandHeader(text string) bool {
	upper := strings.ToUpper(strings.TrimSpace(text))
	if _, ok := KnownBrands[upper]; ok {
		return true
	}
	for brand := range KnownBrands {
		if strings.Contains(upper, brand) {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.Und)

// NormalizeCategoryName turns a raw sheet header such as "HONOR" or "dyson:" into a
// category name.
func NormalizeCategoryName(raw string) string {
	name := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(raw), ":"))
	if name == "" {
		return ""
	}
	if canonical, ok := KnownBrands[strings.ToUpper(name)]; ok {
		return canonical
	}

	words := strings.Fields(name)
	for i, w := range words {
		if canonical, ok := KnownBrands[strings.ToUpper(w)]; ok {
			words[i] = canonical
			continue
		}
		if !isMixedCase(w) {
			words[i] = titleCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}

// isMixedCase keeps model tokens like "iPhone" or "X8b" as written.
func isMixedCase(word string) bool {
	var upper, lower bool
	for _, r := range word {
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
	}
	return upper && lower
}

// numberedModels recognise a model generation inside a leaf category. Group 1 is the
// generation, group 2 the variant suffix.
var numberedModels = []*regexp.Regexp{
	regexp.MustCompile(`^iPhone (\d+)\s*(.*)$`),
	regexp.MustCompile(`^Samsung Galaxy S(\d+)\s*(.*)$`),
	regexp.MustCompile(`^Samsung Galaxy Z (?:Fold|Flip)(\d+)\s*(.*)$`),
	regexp.MustCompile(`^Samsung Galaxy Watch(\d+)\s*(.*)$`),
	regexp.MustCompile(`^Google Pixel (\d+)\s*(.*)$`),
	regexp.MustCompile(`^Xiaomi (\d+)T?\s*(.*)$`),
	regexp.MustCompile(`^Redmi Note (\d+)\s*(.*)$`),
	regexp.MustCompile(`^Redmi (\d+)\s*(.*)$`),
	regexp.MustCompile(`^POCO [A-Z](\d+)\s*(.*)$`),
	regexp.MustCompile(`^Meta Quest (\d+)\s*(.*)$`),
	regexp.MustCompile(`^Realme (\d+)\s*(.*)$`),
	regexp.MustCompile(`^GoPro (\d+)\s*(.*)$`),
	regexp.MustCompile(`^Sony PlayStation (\d+)\s*(.*)$`),
	regexp.MustCompile(`^Dyson V(\d+)\s*(.*)$`),
}

// Variant ranks inside one model generation.
const (
	variantBase = iota
	variantAir
	variantPro
	variantTop
	variantOther
)

func variantRank(suffix string) int {
	switch strings.TrimSpace(suffix) {
	case "":
		return variantBase
	case "Air", "+", "Plus":
		return variantAir
	case "Pro":
		return variantPro
	case "Pro Max", "Ultra", "Pro XL", "Pro+":
		return variantTop
	default:
		return variantOther
	}
}

type sortKey struct {
	recognised bool
	generation int
	variant    int
}

func leafSortKey(leaf string) sortKey {
	for _, re := range numberedModels {
		if m := re.FindStringSubmatch(leaf); m != nil {
			gen, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return sortKey{recognised: true, generation: gen, variant: variantRank(m[2])}
		}
	}
	return sortKey{}
}

// SortLeaves orders leaf categories by model generation, then variant, then name.
// Leaves without a recognised generation follow in alphabetical order.
func SortLeaves(leaves []string) {
	keys := make(map[string]sortKey, len(leaves))
	for _, l := range leaves {
		keys[l] = leafSortKey(l)
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		a, b := keys[leaves[i]], keys[leaves[j]]
		if a.recognised != b.recognised {
			return a.recognised
		}
		if a.recognised {
			if a.generation != b.generation {
				return a.generation < b.generation
			}
			if a.variant != b.variant {
				return a.variant < b.variant
			}
		}
		return leaves[i] < leaves[j]
	})
}

// Tree is the parent to leaves navigation structure for one catalog source.
type Tree struct {
	Parents  []string            `json:"parents"`
	Children map[string][]string `json:"children"`
}

// BuildTree groups leaf categories under their parents. Parents follow the brand
// order, unknown brands come next alphabetically and Accessories is last.
func BuildTree(categories []string) Tree {
	children := make(map[string][]string)
	seen := make(map[string]bool)
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		p := Parent(c)
		children[p] = append(children[p], c)
	}

	for _, leaves := range children {
		SortLeaves(leaves)
	}

	return Tree{Parents: orderParents(children), Children: children}
}

func orderParents(children map[string][]string) []string {
	parents := make([]string, 0, len(children))
	known := make(map[string]bool, len(parentRules))
	for _, r := range parentRules {
		known[r.parent] = true
		if _, ok := children[r.parent]; ok {
			parents = append(parents, r.parent)
		}
	}

	var adhoc []string
	for p := range children {
		if !known[p] && p != Accessories {
			adhoc = append(adhoc, p)
		}
	}
	sort.Strings(adhoc)
	parents = append(parents, adhoc...)

	if _, ok := children[Accessories]; ok {
		parents = append(parents, Accessories)
	}
	return parents
}
