package plan

import "github.com/anupamd/studiq/internal/tier"

// tierSteps maps a difficulty tier to the ordered study steps of the
// rule-based plan.
var tierSteps = map[tier.Tier][]string{
	tier.Beginner: {
		"Re-read the course notes for every topic covered by the quiz",
		"Work through the solved examples before attempting new problems",
		"Complete the beginner practice set for each missed topic",
		"Re-attempt the quiz and compare results",
	},
	tier.Intermediate: {
		"List the question areas answered incorrectly and rank them by frequency",
		"Review notes only for the weak areas, not the whole course",
		"Do one timed practice set per weak area",
		"Re-attempt the quiz targeting a score above 70%",
	},
	tier.Advanced: {
		"Attempt the challenge problem set for the course",
		"Summarize each topic in your own words to verify depth",
		"Write up solutions for a peer; teaching exposes gaps",
	},
}

// tierTargetScore maps the current tier to the next target percentage.
var tierTargetScore = map[tier.Tier]int{
	tier.Beginner:     60,
	tier.Intermediate: 80,
	tier.Advanced:     95,
}
