package loginform

import (
	"github.com/llehouerou/top2000/internal/ui/action"
)

// Submit carries the entered credentials.
type Submit struct {
	Email    string
	Password string
	Register bool // create the account instead of logging in
}

// ActionType implements action.Action.
func (a Submit) ActionType() string { return "loginform.submit" }

// Cancel signals the form was dismissed.
type Cancel struct{}

// ActionType implements action.Action.
func (a Cancel) ActionType() string { return "loginform.cancel" }

// ActionMsg creates an action.Msg for a loginform action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "loginform", Action: a}
}
