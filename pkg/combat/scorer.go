// Package combat scores fight-card picks and decides when an event can settle.
package combat

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rivalbet/settlement-service/internal/models"
)

const (
	winnerPoints = 1.0
	methodBonus  = 0.3
	roundBonus   = 0.2

	defaultConfidence = 3
)

// Scorer computes weighted pick scores for combat-sports pools.
type Scorer struct {
	logger zerolog.Logger
}

// NewScorer creates a pick scorer.
func NewScorer(logger zerolog.Logger) *Scorer {
	return &Scorer{
		logger: logger.With().Str("component", "combat_scorer").Logger(),
	}
}

// ScoreSheet scores one user's picks against the completed results.
// completionRate is completed fights over total fights on the card; scores
// are normalized by 1/completionRate when the rate is in [0.5, 1.0) so that
// partially completed cards grade fairly.
func (s *Scorer) ScoreSheet(sheet *models.PickSheet, results map[string]models.FightResult, completionRate float64) models.UserScore {
	score := models.UserScore{
		UserID:         sheet.UserID,
		PoolID:         sheet.PoolID,
		CompletionRate: completionRate,
	}

	for fightID, pick := range sheet.Picks {
		result, ok := results[fightID]
		if !ok || !result.Completed {
			continue
		}

		score.FightsScored++
		fight := s.scoreFight(fightID, pick, result)

		if fight.WinnerPoints > 0 {
			score.CorrectWinners++
		}
		if fight.MethodBonus > 0 {
			score.CorrectMethods++
		}
		if fight.RoundBonus > 0 {
			score.CorrectRounds++
		}

		score.RawScore += fight.Total
		score.Breakdown = append(score.Breakdown, fight)
	}

	score.TotalScore = score.RawScore
	if completionRate < 1.0 && completionRate >= 0.5 {
		score.TotalScore = score.RawScore * (1 / completionRate)
	}

	return score
}

// scoreFight grades a single pick. Method and round bonuses only apply when
// the winner pick is correct; the round bonus never applies to decisions.
func (s *Scorer) scoreFight(fightID string, pick models.FightPick, result models.FightResult) models.FightScore {
	fight := models.FightScore{FightID: fightID, ConfidenceMultiplier: 1}

	if pick.WinnerID != result.WinnerID {
		return fight
	}
	fight.WinnerPoints = winnerPoints

	if pick.Method != "" && result.Method != "" && MatchMethod(pick.Method, result.Method) {
		fight.MethodBonus = methodBonus
	}

	isDecision := strings.Contains(strings.ToUpper(result.Method), "DECISION")
	if pick.Round > 0 && result.Round > 0 && !isDecision && pick.Round == result.Round {
		fight.RoundBonus = roundBonus
	}

	confidence := pick.Confidence
	if confidence == 0 {
		confidence = defaultConfidence
	}
	fight.ConfidenceMultiplier = 0.8 + float64(confidence)*0.1 // 1-5 stars = 0.9x-1.3x

	fight.Total = (fight.WinnerPoints + fight.MethodBonus + fight.RoundBonus) * fight.ConfidenceMultiplier
	return fight
}

// ScorePool scores every pick sheet, sorts descending by normalized score
// (stable, so ties keep submission order) and assigns 1-based ranks.
func (s *Scorer) ScorePool(sheets []*models.PickSheet, results map[string]models.FightResult, totalFights int) []models.UserScore {
	completed := 0
	for _, r := range results {
		if r.Completed {
			completed++
		}
	}

	completionRate := 1.0
	if totalFights > 0 {
		completionRate = float64(completed) / float64(totalFights)
	}

	scores := make([]models.UserScore, 0, len(sheets))
	for _, sheet := range sheets {
		scores = append(scores, s.ScoreSheet(sheet, results, completionRate))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})
	for i := range scores {
		scores[i].Rank = i + 1
	}

	s.logger.Debug().
		Int("users", len(scores)).
		Int("completed_fights", completed).
		Int("total_fights", totalFights).
		Msg("scored pool")

	return scores
}

// MatchMethod compares a user's method pick against the recorded method using
// group equivalence: ko/tko accepts KO or TKO (and boxing RTD), submission
// accepts any "sub" variant, decision accepts every decision variant, and
// draw/tie accepts draws and no-contests.
func MatchMethod(userPick, actualMethod string) bool {
	if userPick == "" || actualMethod == "" {
		return false
	}

	pick := strings.ToLower(userPick)
	method := strings.ToLower(actualMethod)

	if pick == method {
		return true
	}

	switch pick {
	case "ko/tko":
		return method == "ko" || method == "tko" ||
			strings.Contains(method, "ko") || method == "rtd"
	case "submission":
		return method == "submission" || strings.Contains(method, "sub")
	case "decision":
		return strings.Contains(method, "decision") ||
			method == "ud" || method == "sd" || method == "md"
	case "draw", "tie":
		return method == "draw" || method == "no_contest" || method == "nc"
	}

	return false
}
