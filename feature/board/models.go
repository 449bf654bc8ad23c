package board

import "time"

// BoardInfo is the public summary of a board.
type BoardInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Sections int    `json:"sections"`
	Items    int    `json:"items"`
}

// SavedBoard summarizes a board row persisted in the database.
type SavedBoard struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TargetLayout is a full desired layout submitted by a client.
type TargetLayout struct {
	Sections []TargetSection `json:"sections"`
}

// TargetSection is one section of a target layout, items in display order.
type TargetSection struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

// CreateBoardRequest names a new board.
type CreateBoardRequest struct {
	Name string `json:"name"`
}

// ApplyTargetRequest carries a target layout plus the animation flag.
type ApplyTargetRequest struct {
	TargetLayout
	Animated bool `json:"animated"`
}

// ItemsRequest addresses a set of rows by identifier.
type ItemsRequest struct {
	Items    []string `json:"items"`
	Animated bool     `json:"animated"`
}

// MoveRequest moves a row to the end of a section.
type MoveRequest struct {
	Section  string `json:"section"`
	Animated bool   `json:"animated"`
}

// PositionRef addresses a row by section and index.
type PositionRef struct {
	Section string `json:"section"`
	Index   int    `json:"index"`
}

// ReorderRequest proposes an interactive move between two positions.
type ReorderRequest struct {
	From PositionRef `json:"from"`
	To   PositionRef `json:"to"`
}

// ReorderResponse reports whether the proposal was accepted.
type ReorderResponse struct {
	Moved bool `json:"moved"`
}
