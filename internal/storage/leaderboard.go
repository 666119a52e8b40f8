package storage

import (
	"context"
	"fmt"
)

// LeaderEntry is one player's best score.
type LeaderEntry struct {
	Player string
	Score  int
}

// Leaderboard keeps the best score of each player per variant.
type Leaderboard interface {
	// Submit records score for player. Lower scores never replace a better one.
	Submit(ctx context.Context, gameID, player string, score int) error
	// Top returns up to n players ordered by best score, highest first.
	Top(ctx context.Context, gameID string, n int) ([]LeaderEntry, error)
}

// Leaderboard returns a Leaderboard backed by the scores table.
func (s *Store) Leaderboard() Leaderboard {
	return storeLeaderboard{s: s}
}

type storeLeaderboard struct {
	s *Store
}

func (l storeLeaderboard) Submit(ctx context.Context, gameID, player string, score int) error {
	_, err := l.s.db.ExecContext(ctx,
		"INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)",
		gameID, player, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot submit score: %w", err)
	}
	return nil
}

func (l storeLeaderboard) Top(ctx context.Context, gameID string, n int) ([]LeaderEntry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := l.s.db.QueryContext(ctx,
		`SELECT player, MAX(score) AS best
		 FROM scores
		 WHERE game_id = ?
		 GROUP BY player
		 ORDER BY best DESC, player ASC
		 LIMIT ?`,
		gameID, n,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderEntry
	for rows.Next() {
		var e LeaderEntry
		if err := rows.Scan(&e.Player, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
