package comparison

import "github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"

// Sample holds one athlete's value for one metric together with both
// baselines. HasHistory distinguishes "no history yet" from a zero average.
type Sample struct {
	Current     quantity.Quantity
	TeamAverage quantity.Quantity
	Historical  quantity.Quantity
	HasHistory  bool
	Inverted    bool
}

// VsTeam compares the current value against the team average.
func (s Sample) VsTeam() Comparison {
	return CompareToTeam(s.Current, s.TeamAverage, s.Inverted)
}

// VsHistory compares the current value against the athlete's own average.
func (s Sample) VsHistory() Comparison {
	if !s.HasHistory {
		return Compare(s.Current, quantity.Zero(s.Current.Kind), s.Inverted)
	}
	return Compare(s.Current, s.Historical, s.Inverted)
}
