package search

import (
	"math"
	"sort"
	"strings"

	"github.com/storelens/shopsearch/internal/domain/search/result"
)

// Weights holds the re-ranking coefficients. Semantic, Rating and Popularity
// are the blend weights of the base score and should sum to 1.
type Weights struct {
	Semantic   float64
	Rating     float64
	Popularity float64
	// ReviewSaturation is the review count at which the popularity
	// component saturates to 1.
	ReviewSaturation float64
	// MatchBonus is added once when the title or brand contains a query term.
	MatchBonus float64
	// OutOfStockPenalty multiplies the score of unavailable products.
	OutOfStockPenalty float64
}

// Rank scores every candidate against the query terms and orders them best
// first. Ties break on raw similarity, then review count, then ID, so the
// ordering is deterministic for identical inputs.
func Rank(candidates []result.Candidate, terms []string, w Weights) []result.Candidate {
	ranked := make([]result.Candidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = Score(c, terms, w)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]
		if a.FinalScore() != b.FinalScore() {
			return a.FinalScore() > b.FinalScore()
		}
		if a.Similarity() != b.Similarity() {
			return a.Similarity() > b.Similarity()
		}
		if a.ReviewCount() != b.ReviewCount() {
			return a.ReviewCount() > b.ReviewCount()
		}
		return a.ID() < b.ID()
	})

	return ranked
}

// Score computes the final score of a single candidate. Pure function: the
// same candidate, terms and weights always produce the same score.
//
// The base score blends raw similarity, normalized rating (r/5) and a
// log-saturated popularity boost. An exact term match in the title or brand
// adds a flat bonus, the sum is capped at 1, and out-of-stock products keep
// their capped score multiplied by the penalty.
func Score(c result.Candidate, terms []string, w Weights) result.Candidate {
	semantic := c.Similarity() * w.Semantic
	rating := c.Rating() / 5.0 * w.Rating
	popularity := popularityBoost(c.ReviewCount(), w.ReviewSaturation) * w.Popularity

	var bonus float64
	if hasTermMatch(&c, terms) {
		bonus = w.MatchBonus
	}

	score := math.Min(1.0, semantic+rating+popularity+bonus)

	var penalty float64
	if !c.InStock() {
		penalized := score * w.OutOfStockPenalty
		penalty = score - penalized
		score = penalized
	}

	return c.Scored(score, result.Breakdown{
		Semantic:            semantic,
		Rating:              rating,
		Popularity:          popularity,
		MatchBonus:          bonus,
		AvailabilityPenalty: penalty,
	})
}

// popularityBoost maps a review count to [0, 1] on a log scale. Counts at or
// above the saturation point return 1, so review-count whales cannot dominate.
func popularityBoost(count int, saturation float64) float64 {
	if count <= 0 || saturation <= 0 {
		return 0
	}
	return math.Min(1.0, math.Log(1+float64(count))/math.Log(1+saturation))
}

// hasTermMatch reports whether the title or brand contains any query term.
// Terms of one or two characters are ignored as noise.
func hasTermMatch(c *result.Candidate, terms []string) bool {
	title := strings.ToLower(c.Title())
	brand := strings.ToLower(c.Brand())
	for _, term := range terms {
		if len(term) <= 2 {
			continue
		}
		if strings.Contains(title, term) || strings.Contains(brand, term) {
			return true
		}
	}
	return false
}
