// internal/services/admin_console.go
package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/phonemarket/backend/internal/session"
)

// AdminConsole runs the admin text protocol on top of the session store. A prompt
// leaves a pending action in the admin's session and the next bare number completes it.
type AdminConsole struct {
	sessions session.Store
	pricing  *PricingService
}

type PromptRequest struct {
	Kind   CommandKind `json:"kind" validate:"required,oneof=set_global set_preorder set_user"`
	UserID int64       `json:"user_id,omitempty" validate:"required_if=Kind set_user,gte=0"`
}

func NewAdminConsole(sessions session.Store, pricing *PricingService) *AdminConsole {
	return &AdminConsole{sessions: sessions, pricing: pricing}
}

func (a *AdminConsole) load(ctx context.Context, adminID int64) (session.State, error) {
	state, ok, err := a.sessions.Get(ctx, adminID)
	if err != nil {
		return session.State{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		state = session.New(adminID)
	}
	return state, nil
}

// Prompt records that the admin's next number is meant for req.Kind.
func (a *AdminConsole) Prompt(ctx context.Context, adminID int64, req *PromptRequest) (*session.PendingAction, error) {
	if req.Kind == CommandSetUser && req.UserID <= 0 {
		return nil, fmt.Errorf("%w: set_user needs a user id", ErrInvalidCommand)
	}

	state, err := a.load(ctx, adminID)
	if err != nil {
		return nil, err
	}

	state.Pending = &session.PendingAction{Kind: string(req.Kind)}
	if req.Kind == CommandSetUser {
		state.Pending.UserID = req.UserID
	}
	if err := a.sessions.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return state.Pending, nil
}

// Pending returns the waiting action, or nil.
func (a *AdminConsole) Pending(ctx context.Context, adminID int64) (*session.PendingAction, error) {
	state, err := a.load(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return state.Pending, nil
}

// Cancel drops the waiting action. It reports whether there was one.
func (a *AdminConsole) Cancel(ctx context.Context, adminID int64) (bool, error) {
	state, err := a.load(ctx, adminID)
	if err != nil {
		return false, err
	}
	if state.Pending == nil {
		return false, nil
	}
	state.Pending = nil
	if err := a.sessions.Save(ctx, state); err != nil {
		return false, fmt.Errorf("failed to save session: %w", err)
	}
	return true, nil
}

// Submit runs one line of admin input. While a prompt is pending a bare number
// completes it; an out-of-range value keeps the prompt open for another try.
func (a *AdminConsole) Submit(ctx context.Context, adminID int64, text string) (*CommandResult, error) {
	state, err := a.load(ctx, adminID)
	if err != nil {
		return nil, err
	}

	cmd, err := ParseAdminCommand(text)
	if err != nil {
		return nil, err
	}

	pending := state.Pending
	if pending == nil || cmd.Kind != CommandSetGlobal {
		return a.pricing.Execute(ctx, cmd)
	}

	cmd.Kind = CommandKind(pending.Kind)
	cmd.UserID = pending.UserID
	result, err := a.pricing.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}

	state.Pending = nil
	if err := a.sessions.Save(ctx, state); err != nil {
		logrus.WithError(err).WithField("admin_id", adminID).Warn("Failed to clear pending action")
	}
	return result, nil
}

