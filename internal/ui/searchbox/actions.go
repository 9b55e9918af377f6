package searchbox

import (
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/ui/action"
)

// Selected is emitted when the user picks a suggestion.
type Selected struct {
	Target search.Target
	Item   search.DisplayItem
}

// ActionType implements action.Action.
func (a Selected) ActionType() string { return "searchbox.selected" }

// Cancel is emitted when the box is dismissed.
type Cancel struct{}

// ActionType implements action.Action.
func (a Cancel) ActionType() string { return "searchbox.cancel" }

// ActionMsg creates an action.Msg for a searchbox action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "searchbox", Action: a}
}
