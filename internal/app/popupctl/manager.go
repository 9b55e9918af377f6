package popupctl

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/ui/confirm"
	"github.com/llehouerou/top2000/internal/ui/editform"
	"github.com/llehouerou/top2000/internal/ui/helpbindings"
	"github.com/llehouerou/top2000/internal/ui/loginform"
	"github.com/llehouerou/top2000/internal/ui/popup"
	"github.com/llehouerou/top2000/internal/ui/prompt"
	"github.com/llehouerou/top2000/internal/ui/searchbox"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// Manager manages all modal popups and overlays.
type Manager struct {
	popups   map[Type]popup.Popup
	errorMsg string
	width    int
	height   int
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{popups: make(map[Type]popup.Popup)}
}

// SetSize updates the screen dimensions and resizes open popups.
func (p *Manager) SetSize(width, height int) {
	p.width = width
	p.height = height
	for _, pop := range p.popups {
		pop.SetSize(width, height)
	}
}

// IsVisible returns true if the specified popup type is visible.
func (p *Manager) IsVisible(t Type) bool {
	if t == Error {
		return p.errorMsg != ""
	}
	return p.popups[t] != nil
}

// ActivePopup returns which popup is currently active (highest priority).
func (p *Manager) ActivePopup() Type {
	for _, t := range Priority {
		if p.IsVisible(t) {
			return t
		}
	}
	return None
}

// Show displays a popup of the given type, replacing any of the same type.
func (p *Manager) Show(t Type, pop popup.Popup) tea.Cmd {
	p.Hide(t)
	pop.SetSize(p.width, p.height)
	p.popups[t] = pop
	return pop.Init()
}

// Hide hides the specified popup type. A search box releases its controller.
func (p *Manager) Hide(t Type) {
	if t == Error {
		p.errorMsg = ""
		return
	}
	if box, ok := p.popups[t].(*searchbox.Model); ok {
		box.Close()
	}
	delete(p.popups, t)
}

// HideAll closes every popup.
func (p *Manager) HideAll() {
	for t := range p.popups {
		p.Hide(t)
	}
	p.errorMsg = ""
}

// Get retrieves a popup for type assertion when needed.
func (p *Manager) Get(t Type) popup.Popup {
	return p.popups[t]
}

// ShowHelp displays the help popup with the given contexts.
func (p *Manager) ShowHelp(contexts []string) tea.Cmd {
	return p.Show(Help, helpbindings.New(contexts...))
}

// ShowConfirm displays a confirmation dialog.
func (p *Manager) ShowConfirm(title, message string, context any) tea.Cmd {
	return p.Show(Confirm, confirm.New(title, message, context))
}

// ShowPrompt displays a text prompt.
func (p *Manager) ShowPrompt(title, placeholder string, context any) tea.Cmd {
	return p.Show(Prompt, prompt.New(title, placeholder, context))
}

// ShowEdit displays an edit form.
func (p *Manager) ShowEdit(title string, fields []editform.Field, context any) tea.Cmd {
	return p.Show(Edit, editform.New(title, fields, context))
}

// EditForm returns the open edit form, if any.
func (p *Manager) EditForm() (*editform.Model, bool) {
	form, ok := p.popups[Edit].(*editform.Model)
	return form, ok
}

// ShowLogin displays the login form.
func (p *Manager) ShowLogin() tea.Cmd {
	return p.Show(Login, loginform.New())
}

// LoginForm returns the open login form, if any.
func (p *Manager) LoginForm() (*loginform.Model, bool) {
	form, ok := p.popups[Login].(*loginform.Model)
	return form, ok
}

// ShowSearch displays a search box driving ctrl. The box closes ctrl when
// hidden.
func (p *Manager) ShowSearch(title, placeholder string, ctrl *search.Controller) tea.Cmd {
	return p.Show(Search, searchbox.New(title, placeholder, ctrl))
}

// SearchBox returns the open search box, if any.
func (p *Manager) SearchBox() (*searchbox.Model, bool) {
	box, ok := p.popups[Search].(*searchbox.Model)
	return box, ok
}

// ShowError displays an error message popup.
func (p *Manager) ShowError(msg string) {
	p.errorMsg = msg
}

// ErrorMessage returns the error shown, if any.
func (p *Manager) ErrorMessage() string {
	return p.errorMsg
}

// HandleKey routes a key to the active popup. It returns false when no
// popup is open.
func (p *Manager) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	active := p.ActivePopup()
	switch active {
	case None:
		return false, nil
	case Error:
		switch msg.String() {
		case "enter", "esc", "q", " ":
			p.errorMsg = ""
		}
		return true, nil
	}

	var cmd tea.Cmd
	p.popups[active], cmd = p.popups[active].Update(msg)
	return true, cmd
}

// Update forwards a non-key message to the popup of type t.
func (p *Manager) Update(t Type, msg tea.Msg) tea.Cmd {
	pop := p.popups[t]
	if pop == nil {
		return nil
	}
	var cmd tea.Cmd
	p.popups[t], cmd = pop.Update(msg)
	return cmd
}

// RenderOverlay composes visible popups over the base view.
func (p *Manager) RenderOverlay(base string) string {
	for _, t := range RenderOrder {
		if !p.IsVisible(t) {
			continue
		}
		content := p.errorContent()
		if t != Error {
			content = p.popups[t].View()
		}
		if content == "" {
			continue
		}
		base = popup.Compose(base, popup.Render(content, p.width, p.height), p.width)
	}
	return base
}

func (p *Manager) errorContent() string {
	s := styles.T().S()
	return s.Error.Render("Error") + "\n\n" + s.Base.Render(p.errorMsg) + "\n\n" +
		s.Subtle.Render("Enter/Esc: dismiss")
}
