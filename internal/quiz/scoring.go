package quiz

import "fmt"

// Result is the graded outcome of one quiz submission. It is immutable once
// built: CorrectIndexes and IncorrectIndexes partition the scored question
// indexes, and Score always equals len(CorrectIndexes).
type Result struct {
	Score            int
	TotalQuestions   int
	CorrectIndexes   []int
	IncorrectIndexes []int
}

// Percent returns the score as a percentage of the total.
func (r *Result) Percent() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}

// ErrInvalidSubmission indicates a submission that cannot be graded against
// the answer key.
type ErrInvalidSubmission struct {
	Reason string
}

func (e *ErrInvalidSubmission) Error() string {
	return "invalid submission: " + e.Reason
}

// Score grades a submission against the answer key.
//
// Answers are compared index-wise. A submission may be shorter than the key
// (the student ran out of time); unanswered indexes are left unscored rather
// than marked incorrect. A submission longer than the key is rejected.
// Grading is pure: the same (key, submission) pair always yields the same
// Result.
func Score(key, submission []string) (*Result, error) {
	if len(key) == 0 {
		return nil, &ErrInvalidSubmission{Reason: "answer key is empty"}
	}
	if len(submission) > len(key) {
		return nil, &ErrInvalidSubmission{
			Reason: fmt.Sprintf("%d answers for %d questions", len(submission), len(key)),
		}
	}

	res := &Result{TotalQuestions: len(key)}

	for i, answer := range submission {
		if answer == key[i] {
			res.CorrectIndexes = append(res.CorrectIndexes, i)
		} else {
			res.IncorrectIndexes = append(res.IncorrectIndexes, i)
		}
	}
	res.Score = len(res.CorrectIndexes)

	return res, nil
}
