package search

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/storelens/shopsearch/internal/domain/search/constraint"
)

// ParserConfig holds the vocabulary and thresholds the parser matches against.
type ParserConfig struct {
	// CategoryKeywords maps lowercase query keywords to category names.
	CategoryKeywords map[string]string
	// Brands is the known brand vocabulary, properly cased, matched in order.
	Brands []string
	// HighlyRatedThreshold is the minimum rating implied by "highly rated".
	HighlyRatedThreshold float64
	// TopRatedThreshold is the minimum rating implied by "top rated".
	TopRatedThreshold float64
}

// Parser splits a natural-language query into a residual semantic fragment
// and structured constraints. It is a small ordered set of independent
// extraction rules, not a grammar: each rule either matches and consumes
// text or passes through unchanged. Unrecognized phrases stay in the
// semantic fragment. When the same field matches twice, the last match wins.
type Parser struct {
	priceRules  []extractionRule
	ratingRules []extractionRule
	keywords    map[string]string
	brands      []string
}

type extractionRule struct {
	re     *regexp.Regexp
	assign func(groups []string, cs *constraint.Set)
}

const amount = `\$?(\d+(?:\.\d+)?)`

// NewParser compiles the extraction rules for the given vocabulary.
func NewParser(cfg ParserConfig) *Parser {
	highly := cfg.HighlyRatedThreshold
	top := cfg.TopRatedThreshold

	return &Parser{
		priceRules: []extractionRule{
			{
				re: regexp.MustCompile(`under ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMax(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`below ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMax(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`less than ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMax(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`over ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMin(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`above ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMin(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`more than ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMin(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`between ` + amount + ` and ` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMin(parseAmount(g[1]))
					cs.SetPriceMax(parseAmount(g[2]))
				},
			},
			{
				re: regexp.MustCompile(amount + `\s*-\s*` + amount),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetPriceMin(parseAmount(g[1]))
					cs.SetPriceMax(parseAmount(g[2]))
				},
			},
		},
		ratingRules: []extractionRule{
			{
				re: regexp.MustCompile(`(\d+(?:\.\d+)?)\+ stars?`),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetMinRating(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`(\d+(?:\.\d+)?) stars? or better`),
				assign: func(g []string, cs *constraint.Set) {
					cs.SetMinRating(parseAmount(g[1]))
				},
			},
			{
				re: regexp.MustCompile(`highly rated`),
				assign: func(_ []string, cs *constraint.Set) {
					cs.SetMinRating(highly)
				},
			},
			{
				re: regexp.MustCompile(`top rated`),
				assign: func(_ []string, cs *constraint.Set) {
					cs.SetMinRating(top)
				},
			},
		},
		keywords: cfg.CategoryKeywords,
		brands:   cfg.Brands,
	}
}

// Parse extracts structured constraints from query and returns the residual
// semantic text (lowercase, matched price/rating phrases stripped) alongside
// them. Category and brand keywords stay in the residual: they still carry
// semantic signal for the embedding.
func (p *Parser) Parse(query string) (string, constraint.Set) {
	var cs constraint.Set
	residual := strings.ToLower(query)

	for _, rule := range p.priceRules {
		residual = applyRule(residual, rule, &cs)
	}
	for _, rule := range p.ratingRules {
		residual = applyRule(residual, rule, &cs)
	}

	residual = strings.Join(strings.Fields(residual), " ")

	p.matchCategory(residual, &cs)
	p.matchBrand(residual, &cs)

	return residual, cs
}

// applyRule assigns every match in text order (later matches override
// earlier ones) and strips the matched phrases from the residual.
func applyRule(residual string, rule extractionRule, cs *constraint.Set) string {
	matches := rule.re.FindAllStringSubmatch(residual, -1)
	if len(matches) == 0 {
		return residual
	}
	for _, groups := range matches {
		rule.assign(groups, cs)
	}
	return rule.re.ReplaceAllString(residual, " ")
}

// matchCategory sets the category of the first residual token found in the
// keyword vocabulary. First mention in the query wins, not map order.
func (p *Parser) matchCategory(residual string, cs *constraint.Set) {
	for _, token := range strings.Fields(residual) {
		if category, ok := p.keywords[token]; ok {
			cs.SetCategory(category)
			return
		}
	}
}

// matchBrand sets the first known brand mentioned in the residual text.
func (p *Parser) matchBrand(residual string, cs *constraint.Set) {
	for _, brand := range p.brands {
		if strings.Contains(residual, strings.ToLower(brand)) {
			cs.SetBrand(brand)
			return
		}
	}
}

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
