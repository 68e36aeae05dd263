package app

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/japaniel/rubylens/pkg/text"
)

// Command names accepted by Invoke.
const (
	CmdSaveText = "save_text"
	CmdLoadText = "load_text"
)

var ErrUnknownCommand = errors.New("unknown command")

// CommandError is what a front end receives when a command fails. Its
// message is the user-facing string; the cause stays available to errors.Is.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	if errors.Is(e.Err, ErrUnknownCommand) || errors.Is(e.Err, errBadArgs) {
		return e.Err.Error()
	}
	return fmt.Sprintf("Database error: %v", e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

var errBadArgs = errors.New("invalid arguments")

type saveTextArgs struct {
	Text *text.Text `json:"text"`
}

// Invoke dispatches a named command with JSON arguments and returns its JSON
// result. save_text takes {"text": Text} and returns null; load_text takes no
// arguments and returns a Text or null.
func (s *State) Invoke(name string, args json.RawMessage) (json.RawMessage, error) {
	switch name {
	case CmdSaveText:
		var a saveTextArgs
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, &CommandError{Command: name, Err: fmt.Errorf("%w: %v", errBadArgs, err)}
		}
		if a.Text == nil {
			return nil, &CommandError{Command: name, Err: fmt.Errorf("%w: missing \"text\"", errBadArgs)}
		}
		if err := s.SaveText(*a.Text); err != nil {
			return nil, &CommandError{Command: name, Err: err}
		}
		return json.RawMessage("null"), nil

	case CmdLoadText:
		t, err := s.LoadText()
		if err != nil {
			return nil, &CommandError{Command: name, Err: err}
		}
		if t == nil {
			return json.RawMessage("null"), nil
		}
		out, err := json.Marshal(t)
		if err != nil {
			return nil, &CommandError{Command: name, Err: err}
		}
		return out, nil
	}
	return nil, &CommandError{Command: name, Err: fmt.Errorf("%w: %q", ErrUnknownCommand, name)}
}
