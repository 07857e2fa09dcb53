package scoring

import (
	"fmt"
	"time"
)

// WeekID buckets a timestamp into its ISO calendar week, e.g. "2026-W35".
// Weekly leaderboard entries reset implicitly when the id rolls over.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
