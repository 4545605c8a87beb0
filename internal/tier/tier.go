package tier

import "fmt"

// Tier is a difficulty level derived from quiz performance.
// Tiers are totally ordered: Beginner < Intermediate < Advanced.
type Tier string

const (
	Beginner     Tier = "beginner"
	Intermediate Tier = "intermediate"
	Advanced     Tier = "advanced"
)

// ErrInvalidInput indicates a score/total pair that cannot be classified.
type ErrInvalidInput struct {
	Score int
	Total int
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("cannot classify score %d/%d", e.Score, e.Total)
}

// rank returns the position of t in the tier order. Unknown tiers rank lowest.
func (t Tier) rank() int {
	switch t {
	case Beginner:
		return 0
	case Intermediate:
		return 1
	case Advanced:
		return 2
	default:
		return -1
	}
}

// AtLeast reports whether t is at or above other in the tier order.
func (t Tier) AtLeast(other Tier) bool {
	return t.rank() >= other.rank()
}

// Classify maps a quiz score to a difficulty tier.
//
// The thresholds are a contract shared with video query construction and
// rule-based recommendation filtering: below 40% is Beginner, 40-69% is
// Intermediate, 70% and above is Advanced. Change them here and nowhere else.
func Classify(score, total int) (Tier, error) {
	if total <= 0 || score < 0 {
		return "", &ErrInvalidInput{Score: score, Total: total}
	}

	pct := float64(score) / float64(total) * 100

	switch {
	case pct >= 70:
		return Advanced, nil
	case pct >= 40:
		return Intermediate, nil
	default:
		return Beginner, nil
	}
}
