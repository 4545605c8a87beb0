package recommend

import "github.com/anupamd/studiq/internal/tier"

// Static lookup tables backing the rule-based provider. Entries are curated,
// not generated; keep them alphabetized by key so diffs stay readable.

// tagResources maps a quiz tag to curated resources for that topic.
var tagResources = map[string][]Item{
	"algorithms": {
		{
			ID: "rule-alg-1", Title: "Algorithm Design Manual Companion",
			Description: "Worked solutions and visual walkthroughs for classic algorithm problems.",
			URL:         "https://www.algorist.com/", Type: ResourceArticle,
			Tags: []string{"algorithms"}, Tier: tier.Intermediate, Priority: 70,
		},
		{
			ID: "rule-alg-2", Title: "Sorting Visualizer Exercises",
			Description: "Interactive drills covering comparison sorts and their complexity.",
			URL:         "https://visualgo.net/en/sorting", Type: ResourceExercise,
			Tags: []string{"algorithms", "sorting"}, Tier: tier.Beginner, Priority: 60,
		},
	},
	"arrays": {
		{
			ID: "rule-arr-1", Title: "Array Manipulation Practice Set",
			Description: "Progressive exercises from indexing basics to sliding windows.",
			URL:         "https://leetcode.com/tag/array/", Type: ResourceExercise,
			Tags: []string{"arrays"}, Tier: tier.Beginner, Priority: 65,
		},
	},
	"calculus": {
		{
			ID: "rule-calc-1", Title: "Essence of Calculus",
			Description: "Geometric intuition for derivatives and integrals.",
			URL:         "https://www.3blue1brown.com/topics/calculus", Type: ResourceVideo,
			Tags: []string{"calculus"}, Tier: tier.Beginner, Priority: 70,
		},
	},
	"databases": {
		{
			ID: "rule-db-1", Title: "SQL Practice Workbench",
			Description: "Query exercises against realistic schemas, graded instantly.",
			URL:         "https://sqlbolt.com/", Type: ResourceExercise,
			Tags: []string{"databases", "sql"}, Tier: tier.Beginner, Priority: 65,
		},
		{
			ID: "rule-db-2", Title: "Transaction Isolation Explained",
			Description: "Read phenomena and isolation levels with concrete anomaly examples.",
			URL:         "https://jepsen.io/consistency", Type: ResourceArticle,
			Tags: []string{"databases", "transactions"}, Tier: tier.Advanced, Priority: 55,
		},
	},
	"data-structures": {
		{
			ID: "rule-ds-1", Title: "Open Data Structures",
			Description: "Free textbook covering lists, trees, and graphs with analysis.",
			URL:         "https://opendatastructures.org/", Type: ResourceArticle,
			Tags: []string{"data-structures"}, Tier: tier.Intermediate, Priority: 70,
		},
	},
	"linear-algebra": {
		{
			ID: "rule-la-1", Title: "Essence of Linear Algebra",
			Description: "Visual-first introduction to vectors, spans, and transformations.",
			URL:         "https://www.3blue1brown.com/topics/linear-algebra", Type: ResourceVideo,
			Tags: []string{"linear-algebra"}, Tier: tier.Beginner, Priority: 70,
		},
	},
	"networking": {
		{
			ID: "rule-net-1", Title: "Computer Networking: Top-Down Exercises",
			Description: "Layered protocol exercises from HTTP down to link layer.",
			URL:         "https://gaia.cs.umass.edu/kurose_ross/", Type: ResourceExercise,
			Tags: []string{"networking"}, Tier: tier.Intermediate, Priority: 60,
		},
	},
}

// tierResources maps a difficulty tier to generic study resources used when
// no tag matches.
var tierResources = map[tier.Tier][]Item{
	tier.Beginner: {
		{
			ID: "rule-tier-b1", Title: "Foundations Review Plan",
			Description: "Revisit the course fundamentals before re-attempting the quiz.",
			URL:         "", Type: ResourceCourse,
			Tier: tier.Beginner, Priority: 50,
			SourceReason: "score below 40% — rebuild fundamentals first",
		},
		{
			ID: "rule-tier-b2", Title: "Spaced Practice Starter",
			Description: "Short daily drills on the topics you missed.",
			URL:         "", Type: ResourceExercise,
			Tier: tier.Beginner, Priority: 45,
		},
	},
	tier.Intermediate: {
		{
			ID: "rule-tier-i1", Title: "Targeted Gap Review",
			Description: "Focus on the question areas you answered incorrectly.",
			URL:         "", Type: ResourceExercise,
			Tier: tier.Intermediate, Priority: 50,
			SourceReason: "score between 40% and 70% — close specific gaps",
		},
	},
	tier.Advanced: {
		{
			ID: "rule-tier-a1", Title: "Challenge Problem Set",
			Description: "Harder problems to stretch past the current quiz level.",
			URL:         "", Type: ResourceExercise,
			Tier: tier.Advanced, Priority: 50,
			SourceReason: "score at or above 70% — push further",
		},
	},
}

// programKey addresses curriculum-position suggestions: a program plus the
// year and semester the quiz sits in.
type programKey struct {
	Program  string
	Year     string
	Semester string
}

// semesterResources maps a curriculum position to suggestions for that exact
// point in the program. Consulted before the program-wide table.
var semesterResources = map[programKey][]Item{
	{Program: "cs", Year: "1", Semester: "1"}: {
		{
			ID: "rule-sem-cs11", Title: "First-Semester CS Survival Guide",
			Description: "Study habits and prerequisite refreshers for the intro sequence.",
			URL:         "", Type: ResourceArticle,
			Tier: tier.Beginner, Priority: 45,
		},
	},
	{Program: "cs", Year: "2", Semester: "1"}: {
		{
			ID: "rule-sem-cs21", Title: "Systems Track Preparation",
			Description: "Bridge material between the intro sequence and systems courses.",
			URL:         "", Type: ResourceCourse,
			Tier: tier.Intermediate, Priority: 45,
		},
	},
	{Program: "math", Year: "1", Semester: "2"}: {
		{
			ID: "rule-sem-m12", Title: "Proof Techniques Primer",
			Description: "Induction and contradiction drills before the proofs-heavy courses.",
			URL:         "", Type: ResourceExercise,
			Tier: tier.Beginner, Priority: 45,
		},
	},
}

// programResources maps a program id to program-wide suggestions.
var programResources = map[string][]Item{
	"cs": {
		{
			ID: "rule-prog-cs1", Title: "CS Core Curriculum Map",
			Description: "How this course feeds into the rest of the CS program.",
			URL:         "", Type: ResourceCourse,
			Tier: tier.Beginner, Priority: 40,
		},
	},
	"math": {
		{
			ID: "rule-prog-m1", Title: "Mathematics Pathway Guide",
			Description: "Prerequisite chains across the mathematics program.",
			URL:         "", Type: ResourceCourse,
			Tier: tier.Beginner, Priority: 40,
		},
	},
}
