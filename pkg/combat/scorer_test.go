package combat

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalbet/settlement-service/internal/models"
)

func makeSheet(userID string, picks map[string]models.FightPick) *models.PickSheet {
	return &models.PickSheet{
		UserID:    userID,
		PoolID:    "pool-1",
		Picks:     picks,
		CreatedAt: time.Now(),
	}
}

func makeResult(fightID, winnerID, method string, round, order int) models.FightResult {
	return models.FightResult{
		FightID:    fightID,
		EventID:    "event-1",
		FightOrder: order,
		Completed:  true,
		WinnerID:   winnerID,
		Method:     method,
		Round:      round,
	}
}

// TestScoreSheet_PerfectPick tests the maximum attainable per-fight score:
// (1.0 + 0.3 + 0.2) * 1.3 = 1.95 at confidence 5
func TestScoreSheet_PerfectPick(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	sheet := makeSheet("user-1", map[string]models.FightPick{
		"f1": {WinnerID: "fighter-a", Method: "ko/tko", Round: 2, Confidence: 5},
	})
	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "KO", 2, 1),
	}

	score := scorer.ScoreSheet(sheet, results, 1.0)

	assert.InDelta(t, 1.95, score.TotalScore, 1e-9)
	assert.Equal(t, 1, score.CorrectWinners)
	assert.Equal(t, 1, score.CorrectMethods)
	assert.Equal(t, 1, score.CorrectRounds)
	assert.Equal(t, 1, score.FightsScored)
}

// TestScoreSheet_WrongWinnerScoresZero tests that nothing is awarded when the
// winner pick is wrong, even if method and round match
func TestScoreSheet_WrongWinnerScoresZero(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	sheet := makeSheet("user-1", map[string]models.FightPick{
		"f1": {WinnerID: "fighter-b", Method: "ko/tko", Round: 2, Confidence: 5},
	})
	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "KO", 2, 1),
	}

	score := scorer.ScoreSheet(sheet, results, 1.0)
	assert.Zero(t, score.TotalScore)
	assert.Equal(t, 1, score.FightsScored)
}

// TestScoreSheet_NoRoundBonusForDecisions tests that the round bonus never
// applies when the fight went to a decision
func TestScoreSheet_NoRoundBonusForDecisions(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	sheet := makeSheet("user-1", map[string]models.FightPick{
		"f1": {WinnerID: "fighter-a", Method: "decision", Round: 3, Confidence: 3},
	})
	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "DECISION_UNANIMOUS", 3, 1),
	}

	score := scorer.ScoreSheet(sheet, results, 1.0)

	// (1.0 + 0.3) * 1.1 at default-equivalent confidence 3
	assert.InDelta(t, 1.43, score.TotalScore, 1e-9)
	assert.Equal(t, 0, score.CorrectRounds)
	assert.Equal(t, 1, score.CorrectMethods)
}

// TestScoreSheet_DefaultConfidence tests that an unset confidence scores as 3
func TestScoreSheet_DefaultConfidence(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	sheet := makeSheet("user-1", map[string]models.FightPick{
		"f1": {WinnerID: "fighter-a"},
	})
	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "SUBMISSION", 1, 1),
	}

	score := scorer.ScoreSheet(sheet, results, 1.0)
	assert.InDelta(t, 1.1, score.TotalScore, 1e-9) // 1.0 * (0.8 + 3*0.1)
}

// TestScoreSheet_IncompleteFightsSkipped tests that fights without results do
// not count toward FightsScored
func TestScoreSheet_IncompleteFightsSkipped(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	sheet := makeSheet("user-1", map[string]models.FightPick{
		"f1": {WinnerID: "fighter-a", Confidence: 3},
		"f2": {WinnerID: "fighter-c", Confidence: 3},
	})
	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "KO", 1, 1),
		"f2": {FightID: "f2", Completed: false},
	}

	score := scorer.ScoreSheet(sheet, results, 0.5)
	assert.Equal(t, 1, score.FightsScored)
}

// TestScoreSheet_CompletionNormalization tests the 1/completionRate scale-up
// inside [0.5, 1.0) and its absence at full completion
func TestScoreSheet_CompletionNormalization(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	sheet := makeSheet("user-1", map[string]models.FightPick{
		"f1": {WinnerID: "fighter-a", Confidence: 3},
	})
	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "KO", 1, 1),
	}

	half := scorer.ScoreSheet(sheet, results, 0.5)
	assert.InDelta(t, 2.2, half.TotalScore, 1e-9) // 1.1 * (1/0.5)
	assert.InDelta(t, 1.1, half.RawScore, 1e-9)

	full := scorer.ScoreSheet(sheet, results, 1.0)
	assert.InDelta(t, 1.1, full.TotalScore, 1e-9)
}

// TestScorePool_RanksDescendingStable tests descending rank assignment with
// stable ordering on ties
func TestScorePool_RanksDescendingStable(t *testing.T) {
	scorer := NewScorer(zerolog.Nop())

	results := map[string]models.FightResult{
		"f1": makeResult("f1", "fighter-a", "KO", 1, 1),
		"f2": makeResult("f2", "fighter-c", "DECISION", 3, 2),
	}

	sheets := []*models.PickSheet{
		// user-1 and user-2 tie; user-1 entered first and must rank ahead.
		makeSheet("user-1", map[string]models.FightPick{"f1": {WinnerID: "fighter-a", Confidence: 3}}),
		makeSheet("user-2", map[string]models.FightPick{"f1": {WinnerID: "fighter-a", Confidence: 3}}),
		makeSheet("user-3", map[string]models.FightPick{
			"f1": {WinnerID: "fighter-a", Confidence: 5},
			"f2": {WinnerID: "fighter-c", Confidence: 5},
		}),
		makeSheet("user-4", map[string]models.FightPick{"f1": {WinnerID: "fighter-b", Confidence: 5}}),
	}

	scores := scorer.ScorePool(sheets, results, 2)

	require.Len(t, scores, 4)
	assert.Equal(t, "user-3", scores[0].UserID)
	assert.Equal(t, 1, scores[0].Rank)
	assert.Equal(t, "user-1", scores[1].UserID)
	assert.Equal(t, 2, scores[1].Rank)
	assert.Equal(t, "user-2", scores[2].UserID)
	assert.Equal(t, 3, scores[2].Rank)
	assert.Equal(t, "user-4", scores[3].UserID)
	assert.Equal(t, 4, scores[3].Rank)
}

// TestMatchMethod tests method group equivalence
func TestMatchMethod(t *testing.T) {
	tests := []struct {
		pick   string
		actual string
		want   bool
	}{
		{"ko/tko", "KO", true},
		{"ko/tko", "TKO", true},
		{"ko/tko", "RTD", true},
		{"ko/tko", "SUBMISSION", false},
		{"submission", "SUBMISSION", true},
		{"submission", "sub_armbar", true},
		{"decision", "DECISION_UNANIMOUS", true},
		{"decision", "DECISION_SPLIT", true},
		{"decision", "UD", true},
		{"decision", "KO", false},
		{"draw", "DRAW", true},
		{"draw", "NO_CONTEST", true},
		{"tie", "nc", true},
		{"", "KO", false},
		{"ko/tko", "", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_vs_%s", tt.pick, tt.actual), func(t *testing.T) {
			assert.Equal(t, tt.want, MatchMethod(tt.pick, tt.actual))
		})
	}
}
