package combat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rivalbet/settlement-service/internal/models"
)

func makeEvent(totalFights int, scheduledEnd time.Time) *models.CombatEvent {
	return &models.CombatEvent{
		ID:               "event-1",
		Name:             "Title Night 12",
		Sport:            "MMA",
		TotalFights:      totalFights,
		ScheduledEndTime: scheduledEnd,
		SettlementStatus: models.EventUnsettled,
	}
}

func completedResults(n int, mainEventDone bool) []models.FightResult {
	results := make([]models.FightResult, n)
	for i := 0; i < n; i++ {
		order := i + 2
		if i == 0 && mainEventDone {
			order = 1
		}
		results[i] = models.FightResult{
			FightID:    "f" + string(rune('a'+i)),
			FightOrder: order,
			Completed:  true,
		}
	}
	return results
}

// TestEvaluateTrigger_AllFightsComplete tests the first-priority trigger
func TestEvaluateTrigger_AllFightsComplete(t *testing.T) {
	event := makeEvent(10, time.Now().Add(time.Hour))

	reason, ok := EvaluateTrigger(event, completedResults(10, true), time.Now())

	assert.True(t, ok)
	assert.Equal(t, models.ReasonAllFightsComplete, reason)
}

// TestEvaluateTrigger_MainEventComplete tests settlement at 80% completion
// with the main event finished
func TestEvaluateTrigger_MainEventComplete(t *testing.T) {
	event := makeEvent(10, time.Now().Add(time.Hour))

	reason, ok := EvaluateTrigger(event, completedResults(8, true), time.Now())

	assert.True(t, ok)
	assert.Equal(t, models.ReasonMainEventComplete, reason)
}

// TestEvaluateTrigger_MainEventPending tests that 80% completion without the
// main event does not fire
func TestEvaluateTrigger_MainEventPending(t *testing.T) {
	event := makeEvent(10, time.Now().Add(time.Hour))

	_, ok := EvaluateTrigger(event, completedResults(8, false), time.Now())

	assert.False(t, ok)
}

// TestEvaluateTrigger_Timeout tests the three-hour grace timeout at >= 50%
// completion
func TestEvaluateTrigger_Timeout(t *testing.T) {
	scheduledEnd := time.Now().Add(-4 * time.Hour)
	event := makeEvent(10, scheduledEnd)

	reason, ok := EvaluateTrigger(event, completedResults(5, false), time.Now())

	assert.True(t, ok)
	assert.Equal(t, models.ReasonTimeoutReached, reason)
}

// TestEvaluateTrigger_TimeoutBelowHalf tests that the timeout never fires
// below 50% completion
func TestEvaluateTrigger_TimeoutBelowHalf(t *testing.T) {
	scheduledEnd := time.Now().Add(-6 * time.Hour)
	event := makeEvent(10, scheduledEnd)

	_, ok := EvaluateTrigger(event, completedResults(4, false), time.Now())

	assert.False(t, ok)
}

// TestEvaluateTrigger_BeforeTimeout tests that the grace window is honored
func TestEvaluateTrigger_BeforeTimeout(t *testing.T) {
	scheduledEnd := time.Now().Add(-2 * time.Hour) // inside 3h grace
	event := makeEvent(10, scheduledEnd)

	_, ok := EvaluateTrigger(event, completedResults(6, false), time.Now())

	assert.False(t, ok)
}

// TestEvaluateTrigger_ZeroFights tests that an event with no fights never
// settles
func TestEvaluateTrigger_ZeroFights(t *testing.T) {
	event := makeEvent(0, time.Now().Add(-10*time.Hour))

	_, ok := EvaluateTrigger(event, nil, time.Now())

	assert.False(t, ok)
}
