// Package list provides a generic scrollable list with key navigation.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/cursor"
)

// Action is what a key press did to the list.
type Action int

const (
	ActionNone   Action = iota
	ActionMoved         // cursor moved
	ActionEnter         // enter on a row
	ActionDelete        // d or delete on a row
)

// Result tells the parent what happened during Update.
type Result struct {
	Action Action
	Index  int // affected row, -1 if none
}

// Model is a scrollable list. Parents render the rows returned by Visible.
type Model[T any] struct {
	ui.Base
	items    []T
	cursor   cursor.Cursor
	overhead int
}

// New creates a list. overhead is the number of rows of the component
// height not available to items (borders, titles).
func New[T any](overhead int) Model[T] {
	return Model[T]{cursor: cursor.New(ui.ScrollMargin), overhead: overhead}
}

// SetItems replaces the items, keeping the cursor in bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.Clamp(len(items), m.rows())
}

// Items returns the items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// Select moves the cursor to index i.
func (m *Model[T]) Select(i int) {
	m.cursor.Jump(i, len(m.items), m.rows())
}

// Visible returns the visible rows as [start, end).
func (m Model[T]) Visible() (start, end int) {
	return m.cursor.VisibleRange(len(m.items), m.rows())
}

// rows returns how many items fit in the list.
func (m Model[T]) rows() int {
	return m.ListHeight(m.overhead)
}

// Update handles navigation keys and reports row actions.
func (m *Model[T]) Update(msg tea.Msg) Result {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return Result{Index: -1}
	}

	if m.cursor.HandleKey(key.String(), len(m.items), m.rows()) {
		return Result{Action: ActionMoved, Index: m.cursor.Pos()}
	}
	if len(m.items) == 0 {
		return Result{Index: -1}
	}

	switch key.String() {
	case "enter":
		return Result{Action: ActionEnter, Index: m.cursor.Pos()}
	case "d", "delete":
		return Result{Action: ActionDelete, Index: m.cursor.Pos()}
	}
	return Result{Index: -1}
}
