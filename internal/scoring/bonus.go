package scoring

// bonusThreshold maps a minimum score (out of 20) to a one-time-per-day
// bonus. Schedules are ordered highest threshold first and checked top down.
type bonusThreshold struct {
	MinScore int
	Bonus    int
}

var bonusSchedules = map[string][]bonusThreshold{
	ModeChallenge: {
		{MinScore: 20, Bonus: 10},
		{MinScore: 18, Bonus: 5},
		{MinScore: 15, Bonus: 3},
	},
	ModeMarathon: {
		{MinScore: 20, Bonus: 15},
		{MinScore: 18, Bonus: 8},
		{MinScore: 15, Bonus: 4},
	},
}

// HasBonusSchedule reports whether the mode is a challenge mode with a
// daily bonus schedule. These are also the streak-qualifying modes.
func HasBonusSchedule(mode string) bool {
	_, ok := bonusSchedules[mode]
	return ok
}

// DailyBonus returns the bonus points a score earns in the mode's schedule,
// 0 when no threshold is reached or the mode has no schedule. The once-per-
// day gate is applied by the caller against the stored last-bonus date.
func DailyBonus(mode string, score int) int {
	for _, t := range bonusSchedules[mode] {
		if score >= t.MinScore {
			return t.Bonus
		}
	}
	return 0
}
