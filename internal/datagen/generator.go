package datagen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/storelens/shopsearch/internal/domain/product"
)

// categoryTemplate describes how products of one category are synthesized.
type categoryTemplate struct {
	name          string
	subcategories []string
	brands        []string
	priceRanges   [][2]float64
	features      []string
	descriptions  []string
	extraTags     []string
}

var templates = []categoryTemplate{
	{
		name:          "Electronics",
		subcategories: []string{"Laptops", "Smartphones", "Headphones", "Cameras", "Smart Home"},
		brands:        []string{"Apple", "Samsung", "Sony", "Dell", "HP", "Lenovo", "Canon", "Bose"},
		priceRanges:   [][2]float64{{200, 3000}, {100, 1500}, {50, 500}, {300, 2000}, {50, 300}},
		features: []string{
			"wireless connectivity", "long battery life", "4K resolution",
			"fast processing", "compact design", "water resistance",
		},
		descriptions: []string{
			"Experience cutting-edge technology with this high-performance %s. Features advanced %s and %s.",
			"Professional-grade %s designed for daily use. Includes %s, %s, and exceptional build quality.",
			"Innovative %s that combines %s with %s to deliver outstanding performance.",
		},
		extraTags: []string{"tech", "gadget", "digital", "smart", "wireless"},
	},
	{
		name:          "Clothing & Accessories",
		subcategories: []string{"Men's Clothing", "Women's Clothing", "Shoes", "Bags", "Jewelry"},
		brands:        []string{"Nike", "Adidas", "Levi's", "Calvin Klein", "Coach", "Michael Kors"},
		priceRanges:   [][2]float64{{20, 200}, {25, 300}, {50, 400}, {100, 800}, {30, 500}},
		features: []string{
			"moisture-wicking fabric", "ergonomic fit", "UV protection",
			"breathable material", "stain resistance", "wrinkle-free finish",
		},
		descriptions: []string{
			"Premium %s crafted from high-quality materials. Features %s and %s for ultimate comfort.",
			"Stylish and comfortable %s perfect for daily activities. Made with %s and %s.",
			"Trendy %s that combines fashion with functionality. Features %s and %s.",
		},
		extraTags: []string{"fashion", "style", "comfort", "trendy", "casual"},
	},
	{
		name:          "Sports & Outdoors",
		subcategories: []string{"Fitness Equipment", "Outdoor Gear", "Athletic Wear", "Team Sports"},
		brands:        []string{"Nike", "Under Armour", "Patagonia", "North Face", "REI", "Garmin"},
		priceRanges:   [][2]float64{{30, 500}, {50, 800}, {25, 150}, {20, 300}},
		features: []string{
			"GPS tracking", "heart rate monitoring", "waterproof design",
			"lightweight construction", "shock absorption", "adjustable settings",
		},
		descriptions: []string{
			"High-performance %s engineered for training. Built with %s and %s.",
			"Professional %s designed for serious athletes. Features %s and %s.",
			"Durable %s perfect for outdoor adventures. Weather-resistant design with %s and %s.",
		},
		extraTags: []string{"fitness", "outdoor", "athletic", "performance", "training"},
	},
	{
		name:          "Home & Garden",
		subcategories: []string{"Furniture", "Kitchen", "Bedding", "Garden Tools", "Decor"},
		brands:        []string{"IKEA", "KitchenAid", "Dyson", "Cuisinart", "Black & Decker"},
		priceRanges:   [][2]float64{{50, 1000}, {30, 400}, {20, 200}, {25, 150}, {15, 300}},
		features: []string{
			"energy efficiency", "easy installation", "multiple settings",
			"compact storage", "remote control", "automatic operation",
		},
		descriptions: []string{
			"Essential %s that brings comfort to your home. Features %s and %s for convenience.",
			"Elegant %s designed to enhance your living space. Combines %s with %s.",
			"Practical %s that makes daily life easier. Built with %s and %s.",
		},
		extraTags: []string{"home", "decor", "practical", "convenient", "lifestyle"},
	},
}

var titleSuffixes = []string{"Pro", "Max", "Elite", "Premium", "Ultra"}

// Generator synthesizes a realistic product catalog. Deterministic for a
// given seed: the same seed and count always produce the same products,
// IDs included.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// New creates a seeded generator.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// Products generates n products without vectors. Embedding happens at
// provisioning time, not here.
func (g *Generator) Products(n int) ([]product.Product, error) {
	prods := make([]product.Product, 0, n)
	for i := 0; i < n; i++ {
		p, err := g.product(i)
		if err != nil {
			return nil, fmt.Errorf("generate product %d: %w", i, err)
		}
		prods = append(prods, p)
	}
	return prods, nil
}

func (g *Generator) product(i int) (product.Product, error) {
	tpl := templates[g.rng.Intn(len(templates))]

	subIdx := g.rng.Intn(len(tpl.subcategories))
	sub := tpl.subcategories[subIdx]
	brand := tpl.brands[g.rng.Intn(len(tpl.brands))]

	priceRange := tpl.priceRanges[subIdx%len(tpl.priceRanges)]
	price := roundCents(priceRange[0] + g.rng.Float64()*(priceRange[1]-priceRange[0]))

	rating := roundTenth(3.0 + g.rng.Float64()*2.0)
	reviewCount := 10 + g.rng.Intn(4991)

	// Roughly one product in ten is out of stock.
	inStock := g.rng.Float64() < 0.9

	title := fmt.Sprintf("%s %s - Professional Grade", brand, sub)
	if g.rng.Float64() > 0.7 {
		title += " " + titleSuffixes[g.rng.Intn(len(titleSuffixes))]
	}

	return product.New(
		g.id(i), title, g.description(tpl, sub), tpl.name, brand,
		price, rating, reviewCount, inStock, g.tags(tpl, sub, brand),
	)
}

// id derives a stable product identifier from the seed and ordinal, so
// re-seeding a catalog overwrites the same records instead of duplicating.
func (g *Generator) id(i int) string {
	name := fmt.Sprintf("shopsearch/%d/%d", g.seed, i)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func (g *Generator) description(tpl categoryTemplate, sub string) string {
	template := tpl.descriptions[g.rng.Intn(len(tpl.descriptions))]

	first := g.rng.Intn(len(tpl.features))
	second := g.rng.Intn(len(tpl.features) - 1)
	if second >= first {
		second++
	}

	return fmt.Sprintf(template, strings.ToLower(sub), tpl.features[first], tpl.features[second])
}

func (g *Generator) tags(tpl categoryTemplate, sub, brand string) []string {
	tags := []string{
		strings.ReplaceAll(strings.ToLower(tpl.name), " & ", "-"),
		strings.ReplaceAll(strings.ToLower(sub), " ", "-"),
		strings.ToLower(brand),
	}

	count := 2 + g.rng.Intn(3)
	perm := g.rng.Perm(len(tpl.extraTags))
	for _, idx := range perm[:count] {
		tags = append(tags, tpl.extraTags[idx])
	}
	return tags
}

func roundCents(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

func roundTenth(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
