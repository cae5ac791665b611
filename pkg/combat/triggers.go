package combat

import (
	"time"

	"github.com/rivalbet/settlement-service/internal/models"
)

const (
	mainEventThreshold = 0.8
	timeoutThreshold   = 0.5
	timeoutGrace       = 3 * time.Hour
)

// EvaluateTrigger decides whether an event is ready to settle, returning the
// reason and true when a trigger is met. Triggers are checked in priority
// order; below 50% completion nothing ever fires.
func EvaluateTrigger(event *models.CombatEvent, results []models.FightResult, now time.Time) (models.SettlementReason, bool) {
	completed := 0
	mainEventDone := false
	for _, r := range results {
		if !r.Completed {
			continue
		}
		completed++
		if r.FightOrder == 1 {
			mainEventDone = true
		}
	}

	totalFights := event.TotalFights
	if totalFights == 0 {
		return "", false
	}
	completionRate := float64(completed) / float64(totalFights)

	if completed == totalFights {
		return models.ReasonAllFightsComplete, true
	}

	if completionRate >= mainEventThreshold && mainEventDone {
		return models.ReasonMainEventComplete, true
	}

	if !event.ScheduledEndTime.IsZero() &&
		now.After(event.ScheduledEndTime.Add(timeoutGrace)) &&
		completionRate >= timeoutThreshold {
		return models.ReasonTimeoutReached, true
	}

	return "", false
}
