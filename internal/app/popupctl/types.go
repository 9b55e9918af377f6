// Package popupctl manages the modal popups shown over the views.
package popupctl

// Type identifies which popup is currently active.
type Type int

const (
	None Type = iota
	Help
	Confirm
	Prompt
	Edit
	Login
	Search
	Error
)

// Priority defines which popup takes precedence (highest priority first).
var Priority = []Type{
	Error,
	Help,
	Confirm,
	Prompt,
	Edit,
	Login,
	Search,
}

// RenderOrder defines the order popups are rendered (bottom to top).
var RenderOrder = []Type{
	Search,
	Login,
	Edit,
	Prompt,
	Confirm,
	Help,
	Error,
}
