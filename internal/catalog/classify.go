// internal/catalog/classify.go
package catalog

import (
	"regexp"
	"strings"
)

// Accessories is the catch-all leaf and parent for anything no rule recognises.
const Accessories = "Accessories"

// Matcher reports whether a rule applies to a cleaned product name.
type Matcher func(name string) bool

// Rule is one entry of an ordered classification table. The first matching child
// decides the leaf; with no matching child the rule's own Resolve or Leaf is used.
type Rule struct {
	Match    Matcher
	Leaf     string
	Resolve  func(name string) string
	Children []Rule
}

func (r Rule) leaf(name string) string {
	for _, child := range r.Children {
		if child.Match(name) {
			return child.leaf(name)
		}
	}
	if r.Resolve != nil {
		if leaf := r.Resolve(name); leaf != "" {
			return leaf
		}
	}
	return r.Leaf
}

// Contains matches when any of the substrings occurs in the name.
func Contains(subs ...string) Matcher {
	return func(name string) bool {
		for _, s := range subs {
			if strings.Contains(name, s) {
				return true
			}
		}
		return false
	}
}

// Pattern matches a regular expression against the name.
func Pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// All matches when every matcher does.
func All(ms ...Matcher) Matcher {
	return func(name string) bool {
		for _, m := range ms {
			if !m(name) {
				return false
			}
		}
		return true
	}
}

// Not negates a matcher.
func Not(m Matcher) Matcher {
	return func(name string) bool { return !m(name) }
}

// when builds a leaf rule on a substring test, the common case in the tables below.
func when(leaf string, subs ...string) Rule {
	return Rule{Match: Contains(subs...), Leaf: leaf}
}

func whenPattern(leaf, expr string) Rule {
	return Rule{Match: Pattern(expr), Leaf: leaf}
}

// numbered resolves "<prefix> N" from the first number following prefix.
func numbered(prefix string) func(string) string {
	re := regexp.MustCompile(regexp.QuoteMeta(prefix) + `\s+(\d+)`)
	return func(name string) string {
		if m := re.FindStringSubmatch(name); m != nil {
			return prefix + " " + m[1]
		}
		return ""
	}
}

// otherBrands guards generic tokens such as "Watch" from claiming products of another brand.
var otherBrands = Contains("Samsung", "Huawei", "Xiaomi", "Redmi", "Honor", "Garmin", "GARMIN", "Vivo", "Realme")

// LeafRules is the ordered leaf classification table. Order is precedence.
var LeafRules = []Rule{
	{Match: Contains("iPhone"), Leaf: "iPhone", Children: []Rule{
		when("iPhone SE", "iPhone SE"),
		whenPattern("iPhone 11", `iPhone\s+11\b`),
		whenPattern("iPhone 12", `iPhone\s+12\b`),
		whenPattern("iPhone 13", `iPhone\s+13\b`),
		whenPattern("iPhone 14", `iPhone\s+14\b`),
		whenPattern("iPhone 15", `iPhone\s+15\b`),
		whenPattern("iPhone 16", `iPhone\s+16\b`),
		when("iPhone 17 Pro Max", "iPhone 17 Pro Max"),
		when("iPhone 17 Pro", "iPhone 17 Pro"),
		when("iPhone 17 Air", "iPhone 17 Air"),
		whenPattern("iPhone 17", `iPhone\s+17\b`),
		when("iPhone Air", "iPhone Air"),
	}},
	{Match: Contains("iPad"), Leaf: "iPad", Children: []Rule{
		when("iPad mini", "iPad mini"),
		when("iPad Air", "iPad Air"),
		when("iPad Pro", "iPad Pro"),
	}},
	{Match: Contains("MacBook"), Leaf: "MacBook Air", Children: []Rule{
		when("MacBook Air", "MacBook Air"),
		when("MacBook Pro", "MacBook Pro"),
	}},
	when("Mac mini", "Mac mini", "Mac Mini"),
	{Match: All(Contains("Watch", "Series"), Not(otherBrands)), Leaf: "Apple Watch"},
	when("AirPods", "AirPods", "Airpods"),
	when("Magic Keyboard", "Magic Keyboard"),
	{Match: All(Contains("Pencil"), Not(Contains("Samsung"))), Leaf: "Apple Pencil"},
	{Match: Contains("Google Pixel", "Pixel"), Leaf: "Google Pixel", Children: []Rule{
		when("Google Pixel 10 Pro Fold", "Pixel 10 Pro Fold"),
		when("Google Pixel 10 Pro XL", "Pixel 10 Pro XL"),
		when("Google Pixel 10 Pro", "Pixel 10 Pro"),
		whenPattern("Google Pixel 10", `Pixel\s+10\b`),
		when("Google Pixel 9 Pro Fold", "Pixel 9 Pro Fold"),
		when("Google Pixel 9 Pro XL", "Pixel 9 Pro XL", "Pixel 9 ProXL"),
		when("Google Pixel 9 Pro", "Pixel 9 Pro"),
		when("Google Pixel 9a", "Pixel 9a", "Pixel 9 a"),
		whenPattern("Google Pixel 9", `Pixel\s+9\b`),
		when("Google Pixel 8a", "Pixel 8a", "Pixel 8 a"),
		when("Google Pixel 8 Pro", "Pixel 8 Pro"),
		whenPattern("Google Pixel 8", `Pixel\s+8\b`),
		when("Google Pixel 7 Pro", "Pixel 7 Pro"),
		when("Google Pixel 7a", "Pixel 7a", "Pixel 7 a"),
		whenPattern("Google Pixel 7", `Pixel\s+7\b`),
		when("Google Pixel 6 Pro", "Pixel 6 Pro"),
		when("Google Pixel 6a", "Pixel 6a", "Pixel 6 a"),
		whenPattern("Google Pixel 6", `Pixel\s+6\b`),
		whenPattern("Google Pixel 5", `Pixel\s+5\b`),
		whenPattern("Google Pixel 4", `Pixel\s+4\b`),
	}},
	{Match: Contains("Яндекс станция", "Яндекс Станция"), Leaf: "Yandex Station", Children: []Rule{
		when("Yandex Station Mini 3 Pro", "Мини 3 Про"),
		when("Yandex Station Street", "Стрит"),
		when("Yandex Station Lite 2", "Лайт 2"),
	}},
	{Match: Contains("Meta Quest"), Leaf: "Meta Quest", Children: []Rule{
		when("Meta Quest 3S", "Quest 3S"),
		when("Meta Quest 3", "Quest 3"),
		when("Meta Quest 2", "Quest 2"),
	}},
	{Match: Contains("Nintendo Switch"), Leaf: "Nintendo Switch", Children: []Rule{
		when("Nintendo Switch Lite", "Switch Lite"),
		when("Nintendo Switch OLED", "Switch OLED"),
	}},
	{Match: Contains("Steam Deck"), Leaf: "Valve Steam Deck", Children: []Rule{
		when("Valve Steam Deck OLED", "OLED"),
	}},
	{Match: Contains("Sony"), Leaf: "Sony", Children: []Rule{
		when("Sony PlayStation 5", "PlayStation 5", "PS5"),
		when("Sony PlayStation 4", "PlayStation 4", "PS4"),
		{Match: Contains("WH-1000XM"), Leaf: "Sony WH-1000XM", Children: []Rule{
			when("Sony WH-1000XM6", "WH-1000XM6"),
			when("Sony WH-1000XM5", "WH-1000XM5"),
			when("Sony WH-1000XM4", "WH-1000XM4"),
		}},
	}},
	{Match: Contains("GoPro"), Leaf: "GoPro", Resolve: numbered("GoPro")},
	{Match: Contains("Insta360"), Leaf: "Insta360", Children: []Rule{
		when("Insta360 X5", "X5"),
		when("Insta360 X4", "X4"),
		when("Insta360 X3", "X3"),
	}},
	{Match: Contains("Honor"), Leaf: "Honor", Children: []Rule{
		when("Honor X8b", "X8b"),
		when("Honor X8", "X8"),
	}},
	{Match: Contains("Huawei"), Leaf: "Huawei", Children: []Rule{
		when("Huawei Watch Fit", "Watch Fit"),
		when("Huawei Watch", "Watch"),
	}},
	{Match: Contains("Apple"), Leaf: "Apple", Children: []Rule{
		when("Apple iMac", "iMac", "imac"),
		when("Apple Accessories", "Power Adapter", "USB-C"),
	}},
	{Match: Contains("Samsung"), Leaf: "Samsung", Children: []Rule{
		when("Samsung Galaxy S25 Ultra", "Galaxy S25 Ultra"),
		when("Samsung Galaxy S25+", "Galaxy S25+", "Galaxy S25 +"),
		when("Samsung Galaxy S25 Edge", "Galaxy S25 Edge"),
		when("Samsung Galaxy S25", "Galaxy S25"),
		when("Samsung Galaxy S24 Ultra", "Galaxy S24 Ultra"),
		when("Samsung Galaxy S24+", "Galaxy S24+", "Galaxy S24 +"),
		when("Samsung Galaxy S24 FE", "Galaxy S24 FE"),
		when("Samsung Galaxy S24", "Galaxy S24"),
		when("Samsung Galaxy S23+", "Galaxy S23+", "Galaxy S23 +"),
		when("Samsung Galaxy S23", "Galaxy S23"),
		when("Samsung Galaxy Z Fold7", "Galaxy Z Fold7"),
		when("Samsung Galaxy Z Fold6", "Galaxy Z Fold6"),
		when("Samsung Galaxy Z Fold", "Galaxy Z Fold"),
		when("Samsung Galaxy Z Flip7", "Galaxy Z Flip7"),
		when("Samsung Galaxy Z Flip6", "Galaxy Z Flip6"),
		when("Samsung Galaxy Z Flip", "Galaxy Z Flip"),
		when("Samsung Galaxy Tab", "Galaxy Tab"),
		when("Samsung Galaxy A", "Galaxy A"),
		when("Samsung Galaxy Buds", "Galaxy Buds"),
		{Match: Contains("Galaxy Watch"), Leaf: "Samsung Galaxy Watch", Children: []Rule{
			when("Samsung Galaxy Watch8 Classic", "Watch8 Classic"),
			when("Samsung Galaxy Watch8", "Watch8"),
		}},
		when("Samsung Galaxy Fit", "Galaxy Fit"),
		when("Samsung Galaxy Ring", "Galaxy Ring"),
		when("Samsung Accessories", "Power Adapter"),
	}},
	{Match: Contains("Xiaomi", "Redmi", "POCO", "Xioami"), Leaf: "Xiaomi", Children: []Rule{
		when("Xiaomi 15 Ultra", "Xiaomi 15 Ultra"),
		when("Xiaomi 15T Pro", "Xiaomi 15T Pro"),
		when("Xiaomi 15T", "Xiaomi 15T"),
		when("Xiaomi 14T Pro", "Xiaomi 14T Pro"),
		when("Xiaomi 14T", "Xiaomi 14T"),
		when("POCO F7", "POCO F7"),
		when("POCO F6 Pro", "POCO F6 Pro"),
		when("POCO F6", "POCO F6"),
		when("POCO X7 Pro", "POCO X7 Pro"),
		when("POCO X7", "POCO X7"),
		when("POCO M7 Pro", "POCO M7 Pro"),
		when("POCO M7", "POCO M7"),
		when("POCO M6", "POCO M6"),
		when("POCO C85", "POCO C85"),
		when("POCO C61", "POCO C61"),
		when("POCO Pad", "POCO Pad"),
		when("Redmi Note 14 Pro+", "Redmi Note 14 Pro+", "Redmi Note 14 Pro +"),
		when("Redmi Note 14 Pro", "Redmi Note 14 Pro"),
		when("Redmi Note 14S", "Redmi Note 14S"),
		when("Redmi Note 14", "Redmi Note 14"),
		when("Redmi Note 13", "Redmi Note 13"),
		when("Redmi 15", "Redmi 15"),
		when("Redmi 13", "Redmi 13"),
		when("Redmi Pad 7 Pro", "Redmi Pad 7 Pro"),
		when("Redmi Pad Pro", "Redmi Pad Pro"),
		when("Redmi Pad", "Redmi Pad"),
		when("Xiaomi Pad 7 Pro", "Xiaomi Pad 7 Pro", "Xioami Pad 7 Pro"),
		when("Xiaomi Pad", "Xiaomi Pad"),
	}},
	{Match: Contains("Vivo"), Leaf: "Vivo", Children: []Rule{
		when("Vivo Y29", "Y29"),
		when("Vivo Y04", "Y04"),
		when("Vivo Buds", "Buds"),
	}},
	{Match: Contains("Realme"), Leaf: "Realme", Children: []Rule{
		when("Realme C75", "C75"),
		{Match: Pattern(`Realme\s+\d+`), Resolve: numbered("Realme")},
	}},
	{Match: Contains("Garmin", "GARMIN"), Leaf: "Garmin", Children: []Rule{
		when("Garmin MARQ", "MARQ"),
	}},
	{Match: Contains("Dyson", "DYSON"), Leaf: "Dyson", Children: []Rule{
		when("Dyson V15", "V15"),
		when("Dyson V12", "V12"),
		when("Dyson V11", "V11"),
		when("Dyson V10", "V10"),
		when("Dyson V8", "V8"),
		when("Dyson Airwrap", "Airwrap"),
		when("Dyson Supersonic", "Supersonic"),
		when("Dyson Purifier", "Purifier"),
	}},
}

// CategoryEmoji are the markers supplier sheets put in front of product headers.
var CategoryEmoji = []string{"📱", "⌚", "🔳", "💻", "🖥", "🎧", "⌨️", "⌨", "🖊"}

// StripEmoji removes category markers and the emoji variation selector.
func StripEmoji(name string) string {
	for _, e := range CategoryEmoji {
		name = strings.ReplaceAll(name, e, "")
	}
	name = strings.ReplaceAll(name, "\ufe0f", "")
	return strings.TrimSpace(name)
}

// Classify maps a product name to its leaf category. It never fails: names no rule
// recognises land in Accessories.
func Classify(name string) string {
	clean := StripEmoji(name)
	if clean == "" {
		return Accessories
	}
	for _, rule := range LeafRules {
		if rule.Match(clean) {
			return rule.leaf(clean)
		}
	}
	return Accessories
}
