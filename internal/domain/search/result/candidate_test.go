package result

import "testing"

func TestScored_DoesNotMutateOriginal(t *testing.T) {
	c := New("prod-1", 0.8, "title", "", "Electronics", "Sony", 100, 4.5, 200, true, nil)

	scored := c.Scored(0.91, Breakdown{Semantic: 0.56})

	if c.FinalScore() != 0 {
		t.Errorf("expected original candidate unscored, got %g", c.FinalScore())
	}
	if scored.FinalScore() != 0.91 {
		t.Errorf("expected final score 0.91, got %g", scored.FinalScore())
	}
	if scored.Similarity() != 0.8 {
		t.Errorf("expected similarity preserved, got %g", scored.Similarity())
	}
	if scored.ScoreBreakdown().Semantic != 0.56 {
		t.Errorf("expected breakdown preserved, got %+v", scored.ScoreBreakdown())
	}
}
