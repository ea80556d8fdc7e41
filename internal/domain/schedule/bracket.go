package schedule

import (
	"fmt"
	"time"
)

// FirstCupStage labels the only round the generator materializes for cup
// competitions. Deeper rounds are created one match at a time by winner
// advancement.
const FirstCupStage = "First Round"

var cupStages = []string{
	"First Round",
	"Second Round",
	"Third Round",
	"Fourth Round",
	"Fifth Round",
	"Sixth Round",
}

// NextCupStage returns the label of the round after stage. Stages beyond the
// named ones fall back to a numbered label.
func NextCupStage(stage string) string {
	for i, s := range cupStages {
		if s != stage {
			continue
		}
		if i+1 < len(cupStages) {
			return cupStages[i+1]
		}
		return fmt.Sprintf("Round %d", i+2)
	}

	var n int
	if _, err := fmt.Sscanf(stage, "Round %d", &n); err == nil && n > 0 {
		return fmt.Sprintf("Round %d", n+1)
	}
	return fmt.Sprintf("%s - Next", stage)
}

// NextRoundDate keeps advancement matches on the same weekly cadence the
// generator uses between rounds.
func NextRoundDate(date time.Time) time.Time {
	return date.Add(roundInterval)
}
