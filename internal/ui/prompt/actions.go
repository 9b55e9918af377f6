package prompt

import (
	"github.com/llehouerou/top2000/internal/ui/action"
)

// Result contains the prompt result.
type Result struct {
	Text     string
	Context  any  // passed through from New
	Canceled bool // Escape pressed
}

// ActionType implements action.Action.
func (a Result) ActionType() string { return "prompt.result" }

// ActionMsg creates an action.Msg for a prompt action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "prompt", Action: a}
}
