// internal/catalog/classify_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"📱 iPhone 17 Pro Max 256Gb Deep Blue", "iPhone 17 Pro Max"},
		{"iPhone 17 Pro 512Gb Silver", "iPhone 17 Pro"},
		{"iPhone 17 Air 256Gb", "iPhone 17 Air"},
		{"iPhone 17 256Gb Lavender", "iPhone 17"},
		{"iPhone Air 256Gb", "iPhone Air"},
		{"iPhone 15 Pro 128Gb Black", "iPhone 15"},
		{"iPhone SE 64Gb", "iPhone SE"},
		{"iPad mini 7 128Gb", "iPad mini"},
		{"💻 MacBook Pro 14 M4", "MacBook Pro"},
		{"MacBook 13", "MacBook Air"},
		{"Mac Mini M4", "Mac mini"},
		{"⌚ Watch Series 10 42mm", "Apple Watch"},
		{"Airpods 4", "AirPods"},
		{"Pencil Pro", "Apple Pencil"},
		{"Google Pixel 10 Pro XL 256", "Google Pixel 10 Pro XL"},
		{"Pixel 9 ProXL 128", "Google Pixel 9 Pro XL"},
		{"Pixel 9a 128 Obsidian", "Google Pixel 9a"},
		{"Google Pixel 9 128", "Google Pixel 9"},
		{"Pixel Buds Pro 2", "Google Pixel"},
		{"Яндекс Станция Мини 3 Про", "Yandex Station Mini 3 Pro"},
		{"Meta Quest 3S 128", "Meta Quest 3S"},
		{"Nintendo Switch OLED White", "Nintendo Switch OLED"},
		{"Valve Steam Deck OLED 1TB", "Valve Steam Deck OLED"},
		{"Sony PS5 Slim Digital", "Sony PlayStation 5"},
		{"Sony WH-1000XM5 Black", "Sony WH-1000XM5"},
		{"GoPro HERO 13 Black", "GoPro"},
		{"GoPro 12 Black", "GoPro 12"},
		{"Insta360 X4", "Insta360 X4"},
		{"Honor X8b 8/256", "Honor X8b"},
		{"Huawei Watch Fit 4 Pro", "Huawei Watch Fit"},
		{"Apple iMac 24 M4", "Apple iMac"},
		{"Apple 20W USB-C Power Adapter", "Apple Accessories"},
		{"Samsung Galaxy S25 Ultra 12/256 Titanium", "Samsung Galaxy S25 Ultra"},
		{"Samsung Galaxy S24 + 256", "Samsung Galaxy S24+"},
		{"Samsung Galaxy Watch8 Classic 46mm", "Samsung Galaxy Watch8 Classic"},
		{"Samsung Galaxy A56 8/256", "Samsung Galaxy A"},
		{"Xiaomi 15T Pro 12/512", "Xiaomi 15T Pro"},
		{"POCO X7 Pro 8/256", "POCO X7 Pro"},
		{"Redmi Note 14 Pro + 8/256", "Redmi Note 14 Pro+"},
		{"Xioami Pad 7 Pro 256", "Xiaomi Pad 7 Pro"},
		{"Xiaomi Watch S4", "Xiaomi"},
		{"Vivo Y29 128", "Vivo Y29"},
		{"Realme 14 Pro 256", "Realme 14"},
		{"Realme Buds", "Realme"},
		{"GARMIN MARQ Adventurer", "Garmin MARQ"},
		{"Dyson V15 Detect", "Dyson V15"},
		{"DYSON Airwrap Complete", "Dyson Airwrap"},
		{"USB cable 1m", Accessories},
		{"", Accessories},
		{"🖊", Accessories},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestClassifyMostSpecificIPhone17Wins(t *testing.T) {
	names := []string{
		"iPhone 17 Pro Max",
		"iPhone 17 Pro Max 1TB Cosmic Orange",
		"📱 iPhone 17 Pro Max 256Gb eSim",
		"Apple iPhone 17 Pro Max 512Gb 🇺🇸",
	}
	for _, n := range names {
		assert.Equal(t, "iPhone 17 Pro Max", Classify(n), n)
	}
}

func TestClassifyWatchOfOtherBrands(t *testing.T) {
	assert.Equal(t, "Samsung Galaxy Watch", Classify("Samsung Galaxy Watch Ultra"))
	assert.Equal(t, "Huawei Watch", Classify("Huawei Watch GT 5"))
	assert.Equal(t, "Garmin", Classify("Garmin Fenix 8 Watch"))
}

func TestRuleTableCustomRules(t *testing.T) {
	rule := Rule{Match: Contains("Brand"), Leaf: "Brand", Children: []Rule{
		when("Brand One Max", "One Max"),
		when("Brand One", "One"),
	}}
	assert.Equal(t, "Brand One Max", rule.leaf("Brand One Max 128"))
	assert.Equal(t, "Brand One", rule.leaf("Brand One 128"))
	assert.Equal(t, "Brand", rule.leaf("Brand Two"))
}
