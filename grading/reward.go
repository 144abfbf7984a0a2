package grading

// Reward floors. A correct resubmission never decays to zero, while repeated
// correct resubmission is still disincentivized.
const (
	MinXPReward  = 10
	MinJemReward = 1
)

// ComputeReward returns the XP and Jems earned for a submission.
// priorAttempts is the number of attempts recorded before this one: the
// first correct attempt earns the full base amounts; the Nth correct attempt
// earns max(floor, base/N) using integer division. Incorrect answers earn
// nothing.
func ComputeReward(baseXP, baseJems uint, isCorrect bool, priorAttempts int) (xp, jems uint) {
	if !isCorrect {
		return 0, 0
	}
	if priorAttempts == 0 {
		return baseXP, baseJems
	}
	divisor := uint(priorAttempts + 1)
	xp = baseXP / divisor
	if xp < MinXPReward {
		xp = MinXPReward
	}
	jems = baseJems / divisor
	if jems < MinJemReward {
		jems = MinJemReward
	}
	return xp, jems
}
