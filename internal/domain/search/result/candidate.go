package result

// Breakdown itemizes the final score of a candidate. Components sum to the
// pre-penalty score; AvailabilityPenalty records how much the multiplier took.
type Breakdown struct {
	Semantic            float64 `json:"semantic"`
	Rating              float64 `json:"rating"`
	Popularity          float64 `json:"popularity"`
	MatchBonus          float64 `json:"match_bonus"`
	AvailabilityPenalty float64 `json:"availability_penalty"`
}

// Candidate is a single retrieved product with its raw similarity and, after
// re-ranking, the final computed score. Ephemeral, produced per query.
type Candidate struct {
	id          string
	similarity  float64
	title       string
	description string
	category    string
	brand       string
	price       float64
	rating      float64
	reviewCount int
	inStock     bool
	tags        []string
	finalScore  float64
	breakdown   Breakdown
}

// New creates a candidate with its raw similarity score. The final score is
// attached later by the re-ranker via Scored.
func New(
	id string, similarity float64,
	title, description, category, brand string,
	price, rating float64, reviewCount int,
	inStock bool, tags []string,
) Candidate {
	return Candidate{
		id: id, similarity: similarity,
		title: title, description: description,
		category: category, brand: brand,
		price: price, rating: rating, reviewCount: reviewCount,
		inStock: inStock, tags: tags,
	}
}

// Scored returns a copy with the final score and breakdown attached.
func (c Candidate) Scored(finalScore float64, breakdown Breakdown) Candidate {
	c.finalScore = finalScore
	c.breakdown = breakdown
	return c
}

// ID returns the product identifier.
func (c *Candidate) ID() string { return c.id }

// Similarity returns the raw similarity score in [0, 1].
func (c *Candidate) Similarity() float64 { return c.similarity }

// Title returns the product title.
func (c *Candidate) Title() string { return c.title }

// Description returns the product description.
func (c *Candidate) Description() string { return c.description }

// Category returns the product category.
func (c *Candidate) Category() string { return c.category }

// Brand returns the product brand.
func (c *Candidate) Brand() string { return c.brand }

// Price returns the product price.
func (c *Candidate) Price() float64 { return c.price }

// Rating returns the product rating in [0, 5].
func (c *Candidate) Rating() float64 { return c.rating }

// ReviewCount returns the number of reviews.
func (c *Candidate) ReviewCount() int { return c.reviewCount }

// InStock reports availability.
func (c *Candidate) InStock() bool { return c.inStock }

// Tags returns the product tags.
func (c *Candidate) Tags() []string { return c.tags }

// FinalScore returns the re-ranked score in [0, 1].
func (c *Candidate) FinalScore() float64 { return c.finalScore }

// ScoreBreakdown returns the score components.
func (c *Candidate) ScoreBreakdown() Breakdown { return c.breakdown }
