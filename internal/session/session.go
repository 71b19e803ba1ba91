// internal/session/session.go
package session

import (
	"context"
	"time"

	"github.com/phonemarket/backend/internal/models"
)

// Screen is the view a user is looking at.
type Screen string

const (
	ScreenMain       Screen = "main"
	ScreenParents    Screen = "parents"
	ScreenCategories Screen = "categories"
	ScreenProducts   Screen = "products"
)

// PendingAction is an admin flow waiting for the next text input, e.g. a new markup value.
type PendingAction struct {
	Kind   string `json:"kind"`
	UserID int64  `json:"user_id,omitempty"`
}

// State is the conversation state of one user.
type State struct {
	UserID    int64          `json:"user_id"`
	Source    models.Source  `json:"source"`
	Screen    Screen         `json:"screen"`
	Parent    string         `json:"parent,omitempty"`
	Category  string         `json:"category,omitempty"`
	Pending   *PendingAction `json:"pending,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// New returns the initial state for a user.
func New(userID int64) State {
	return State{UserID: userID, Source: models.SourceStandard, Screen: ScreenMain}
}

// Back moves one level up the navigation. It reports false at the top.
func (s *State) Back() bool {
	switch s.Screen {
	case ScreenProducts:
		s.Screen = ScreenCategories
		s.Category = ""
	case ScreenCategories:
		s.Screen = ScreenParents
		s.Parent = ""
	case ScreenParents:
		s.Screen = ScreenMain
	default:
		return false
	}
	return true
}

// Store keeps per-user state between requests. Entries expire after the store's TTL.
type Store interface {
	Get(ctx context.Context, userID int64) (State, bool, error)
	Save(ctx context.Context, state State) error
	Delete(ctx context.Context, userID int64) error
}
