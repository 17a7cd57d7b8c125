package config

// Built-in catalog vocabulary used when the config file does not override it.
// The keyword and brand lists feed the query parser; keeping them in config
// lets a deployment extend them without a rebuild.

// DefaultCategories returns the demo catalog categories.
func DefaultCategories() []string {
	return []string{
		"Electronics",
		"Clothing & Accessories",
		"Sports & Outdoors",
		"Home & Garden",
	}
}

// DefaultCategoryKeywords maps query keywords to catalog categories.
func DefaultCategoryKeywords() map[string]string {
	return map[string]string{
		"laptop":     "Electronics",
		"computer":   "Electronics",
		"headphones": "Electronics",
		"phone":      "Electronics",
		"camera":     "Electronics",
		"shirt":      "Clothing & Accessories",
		"shoes":      "Clothing & Accessories",
		"dress":      "Clothing & Accessories",
		"jacket":     "Clothing & Accessories",
		"running":    "Sports & Outdoors",
		"fitness":    "Sports & Outdoors",
		"outdoor":    "Sports & Outdoors",
		"camping":    "Sports & Outdoors",
		"furniture":  "Home & Garden",
		"kitchen":    "Home & Garden",
		"garden":     "Home & Garden",
		"decor":      "Home & Garden",
	}
}

// DefaultBrands returns brands the query parser recognizes as explicit mentions.
func DefaultBrands() []string {
	return []string{
		"Apple", "Samsung", "Sony", "Nike", "Adidas", "Canon", "Dell", "HP",
		"Lenovo", "Bose", "Calvin Klein", "Coach", "Under Armour", "Patagonia",
	}
}

// DefaultSampleQueries returns canned queries surfaced as suggestions.
func DefaultSampleQueries() []string {
	return []string{
		"comfortable running shoes",
		"wireless noise canceling headphones",
		"gaming laptop under $1000",
		"waterproof bluetooth speaker",
		"ergonomic office chair",
		"4K webcam for streaming",
		"portable power bank",
		"fitness tracker with GPS",
	}
}
