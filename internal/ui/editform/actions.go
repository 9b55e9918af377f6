package editform

import (
	"github.com/llehouerou/top2000/internal/ui/action"
)

// Submit carries the edited values, in field order.
type Submit struct {
	Values  []string
	Context any // passed through from New
}

// ActionType implements action.Action.
func (a Submit) ActionType() string { return "editform.submit" }

// Cancel signals the form was dismissed without saving.
type Cancel struct {
	Context any
}

// ActionType implements action.Action.
func (a Cancel) ActionType() string { return "editform.cancel" }

// ActionMsg creates an action.Msg for an editform action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "editform", Action: a}
}
