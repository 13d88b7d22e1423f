package storage

import (
	"fmt"
	"time"
)

// ChessGame is an archived finished chess game.
type ChessGame struct {
	ID        string
	Mode      string // "cpu" or "local"
	White     string
	Black     string
	Result    string // "1-0", "0-1", "1/2-1/2"
	Method    string // "Checkmate", "Stalemate", ...
	FinalFEN  string
	Moves     string // space separated UCI moves
	Plies     int
	CreatedAt time.Time
}

// SaveChessGame archives a finished game.
func (s *Store) SaveChessGame(g ChessGame) error {
	_, err := s.db.Exec(
		`INSERT INTO chess_games (id, mode, white, black, result, method, final_fen, moves, plies)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Mode, g.White, g.Black, g.Result, g.Method, g.FinalFEN, g.Moves, g.Plies,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save chess game: %w", err)
	}
	return nil
}

// RecentChessGames returns the most recently finished games, newest first.
func (s *Store) RecentChessGames(limit int) ([]ChessGame, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, white, black, result, method, final_fen, moves, plies, created_at
		 FROM chess_games
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query chess games: %w", err)
	}
	defer rows.Close()

	var out []ChessGame
	for rows.Next() {
		var g ChessGame
		var createdAt any
		if err := rows.Scan(&g.ID, &g.Mode, &g.White, &g.Black, &g.Result, &g.Method,
			&g.FinalFEN, &g.Moves, &g.Plies, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.CreatedAt = parseTime(createdAt)
		out = append(out, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
