package game

// Penalty is the score of any rejected submission.
const Penalty = -2

// lengthScores maps effective word length to points for accepted words.
// Anything longer (or otherwise missing) scores longWordScore.
var lengthScores = map[int]int{
	3: 1,
	4: 1,
	5: 2,
	6: 3,
	7: 5,
}

const longWordScore = 11

// Score returns the delta for a submission.
func Score(accepted bool, effectiveLength int) int {
	if !accepted {
		return Penalty
	}
	if s, ok := lengthScores[effectiveLength]; ok {
		return s
	}
	return longWordScore
}
