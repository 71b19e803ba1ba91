// internal/services/admin_command.go
package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phonemarket/backend/internal/repository"
)

type CommandKind string

const (
	CommandSetUser     CommandKind = "set_user"
	CommandRemoveUser  CommandKind = "remove_user"
	CommandList        CommandKind = "list"
	CommandCheck       CommandKind = "check"
	CommandSetGlobal   CommandKind = "set_global"
	CommandSetPreorder CommandKind = "set_preorder" // prompt only, no text form
)

// AdminCommand is one parsed line of the admin text protocol:
//
//	+user ID N   set a personal markup
//	-user ID     remove a personal markup
//	list         list personal markups
//	check ID     show one personal markup
//	N            set the global markup
type AdminCommand struct {
	Kind   CommandKind     `json:"kind"`
	UserID int64           `json:"user_id,omitempty"`
	Amount decimal.Decimal `json:"amount"`
}

type CommandRequest struct {
	Text string `json:"text" validate:"required,max=200"`
}

type CommandResult struct {
	Command   AdminCommand              `json:"command"`
	Amount    *decimal.Decimal          `json:"amount,omitempty"`
	Overrides []repository.UserOverride `json:"overrides,omitempty"`
}

func ParseAdminCommand(text string) (AdminCommand, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return AdminCommand{}, fmt.Errorf("%w: empty input", ErrInvalidCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "+user":
		if len(fields) != 3 {
			return AdminCommand{}, fmt.Errorf("%w: usage +user ID N", ErrInvalidCommand)
		}
		id, err := parseUserID(fields[1])
		if err != nil {
			return AdminCommand{}, err
		}
		amount, err := parseAmount(fields[2])
		if err != nil {
			return AdminCommand{}, err
		}
		return AdminCommand{Kind: CommandSetUser, UserID: id, Amount: amount}, nil

	case "-user":
		if len(fields) != 2 {
			return AdminCommand{}, fmt.Errorf("%w: usage -user ID", ErrInvalidCommand)
		}
		id, err := parseUserID(fields[1])
		if err != nil {
			return AdminCommand{}, err
		}
		return AdminCommand{Kind: CommandRemoveUser, UserID: id}, nil

	case "list":
		if len(fields) != 1 {
			return AdminCommand{}, fmt.Errorf("%w: list takes no arguments", ErrInvalidCommand)
		}
		return AdminCommand{Kind: CommandList}, nil

	case "check":
		if len(fields) != 2 {
			return AdminCommand{}, fmt.Errorf("%w: usage check ID", ErrInvalidCommand)
		}
		id, err := parseUserID(fields[1])
		if err != nil {
			return AdminCommand{}, err
		}
		return AdminCommand{Kind: CommandCheck, UserID: id}, nil
	}

	// A bare number, possibly written with thousands separators.
	amount, err := parseAmount(strings.Join(fields, ""))
	if err != nil {
		return AdminCommand{}, err
	}
	return AdminCommand{Kind: CommandSetGlobal, Amount: amount}, nil
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad user id %q", ErrInvalidCommand, raw)
	}
	return id, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidCommand, raw)
	}
	return amount, nil
}

// Execute applies a parsed command. Validation failures leave state unchanged.
func (s *PricingService) Execute(ctx context.Context, cmd AdminCommand) (*CommandResult, error) {
	result := &CommandResult{Command: cmd}

	switch cmd.Kind {
	case CommandSetUser:
		if err := s.SetUserMarkup(ctx, cmd.UserID, cmd.Amount); err != nil {
			return nil, err
		}
		result.Amount = &cmd.Amount

	case CommandRemoveUser:
		if err := s.RemoveUserMarkup(ctx, cmd.UserID); err != nil {
			return nil, err
		}

	case CommandList:
		overrides, err := s.ListUserMarkups(ctx)
		if err != nil {
			return nil, err
		}
		result.Overrides = overrides

	case CommandCheck:
		amount, err := s.GetUserMarkup(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		result.Amount = &amount

	case CommandSetGlobal, CommandSetPreorder:
		if err := s.SetGlobalMarkup(ctx, cmd.Kind == CommandSetPreorder, cmd.Amount); err != nil {
			return nil, err
		}
		result.Amount = &cmd.Amount

	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidCommand, cmd.Kind)
	}

	return result, nil
}
