package streak

// milestones are the celebrated streak lengths, ascending.
var milestones = []int{7, 14, 30, 60, 90, 180, 365}

// IsMilestone reports whether n is a celebrated streak length. Signaling
// only; milestones have no state effect.
func IsMilestone(n int) bool {
	for _, m := range milestones {
		if n == m {
			return true
		}
	}
	return false
}

// NextMilestone returns the smallest milestone strictly greater than n,
// defaulting to the largest milestone once n has passed it.
func NextMilestone(n int) int {
	for _, m := range milestones {
		if m > n {
			return m
		}
	}
	return milestones[len(milestones)-1]
}
