package storage

import "github.com/chubes4/chubes-games/internal/core"

// RecordGame stores the outcome of a game: its score on the high-score
// table when positive, and the run in the history. Returns the run ID.
func (s *Store) RecordGame(gameID string, sum core.RunSummary) (string, error) {
	if sum.Score > 0 {
		if _, err := s.SaveScore(gameID, sum.Score); err != nil {
			return "", err
		}
	}
	return s.SaveRun(RunRecord{
		GameID:    gameID,
		Seed:      sum.Seed,
		Score:     sum.Score,
		Kills:     sum.Kills,
		Built:     sum.Built,
		Ticks:     sum.Ticks,
		Duration:  sum.Duration,
		EndReason: sum.EndReason,
	})
}
