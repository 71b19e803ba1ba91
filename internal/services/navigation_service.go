// internal/services/navigation_service.go
package services

import (
	"context"
	"fmt"

	"github.com/phonemarket/backend/internal/catalog"
	"github.com/phonemarket/backend/internal/models"
	"github.com/phonemarket/backend/internal/session"
)

// NavigationService walks a user through source, parent, category and products,
// keeping the position in the session store.
type NavigationService struct {
	sessions session.Store
	catalog  *CatalogService
}

// OpenRequest moves one step down. Fields are applied in order: source, parent, category.
type OpenRequest struct {
	Source   models.Source `json:"source,omitempty" validate:"omitempty,source"`
	Parent   string        `json:"parent,omitempty" validate:"max=255"`
	Category string        `json:"category,omitempty" validate:"max=255"`
}

// NavigationView is the current position plus what to show there.
type NavigationView struct {
	State      session.State  `json:"state"`
	Parents    []string       `json:"parents,omitempty"`
	Categories []string       `json:"categories,omitempty"`
	Groups     []ProductGroup `json:"groups,omitempty"`
}

func NewNavigationService(sessions session.Store, catalog *CatalogService) *NavigationService {
	return &NavigationService{sessions: sessions, catalog: catalog}
}

func (s *NavigationService) state(ctx context.Context, userID int64) (session.State, error) {
	state, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return session.State{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		state = session.New(userID)
	}
	return state, nil
}

func (s *NavigationService) Current(ctx context.Context, userID int64) (*NavigationView, error) {
	state, err := s.state(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, state)
}

func (s *NavigationService) Open(ctx context.Context, userID int64, req *OpenRequest) (*NavigationView, error) {
	state, err := s.state(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Source != "" {
		if !req.Source.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.Source)
		}
		state.Source = req.Source
		state.Screen = session.ScreenParents
		state.Parent, state.Category = "", ""
	}

	if req.Parent != "" || req.Category != "" {
		tree, err := s.catalog.Tree(ctx, state.Source)
		if err != nil {
			return nil, err
		}

		if req.Parent != "" {
			if _, ok := tree.Children[req.Parent]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.Parent)
			}
			state.Parent = req.Parent
			state.Category = ""
			state.Screen = session.ScreenCategories
		}

		if req.Category != "" {
			parent := state.Parent
			if parent == "" {
				parent = catalog.Parent(req.Category)
			}
			if !contains(tree.Children[parent], req.Category) {
				return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.Category)
			}
			state.Parent = parent
			state.Category = req.Category
			state.Screen = session.ScreenProducts
		}
	}

	if state.Screen == session.ScreenMain {
		state.Screen = session.ScreenParents
	}
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.render(ctx, state)
}

// Back moves one level up. The bool is false when the user was already at the top.
func (s *NavigationService) Back(ctx context.Context, userID int64) (*NavigationView, bool, error) {
	state, err := s.state(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	moved := state.Back()
	if moved {
		if err := s.sessions.Save(ctx, state); err != nil {
			return nil, false, fmt.Errorf("failed to save session: %w", err)
		}
	}

	view, err := s.render(ctx, state)
	return view, moved, err
}

func (s *NavigationService) Reset(ctx context.Context, userID int64) error {
	return s.sessions.Delete(ctx, userID)
}

func (s *NavigationService) render(ctx context.Context, state session.State) (*NavigationView, error) {
	view := &NavigationView{State: state}

	switch state.Screen {
	case session.ScreenParents:
		tree, err := s.catalog.Tree(ctx, state.Source)
		if err != nil {
			return nil, err
		}
		view.Parents = tree.Parents
	case session.ScreenCategories:
		categories, err := s.catalog.Categories(ctx, state.Source, state.Parent)
		if err != nil {
			return nil, err
		}
		view.Categories = categories
	case session.ScreenProducts:
		groups, err := s.catalog.Groups(ctx, state.Source, state.Category, state.UserID)
		if err != nil {
			return nil, err
		}
		view.Groups = groups
	}
	return view, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
