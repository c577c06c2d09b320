// Package router keeps the stack of screens of the terminal editor.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/eduval/eduval/internal/screen"
)

// PushScreenMsg pushes Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg pops the top screen. A non-nil Result is delivered to the
// screen underneath, which lets forms hand their outcome back.
type PopScreenMsg struct {
	Result tea.Msg
}

// Push returns a command that pushes s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop returns a command that pops the top screen with result.
func Pop(result tea.Msg) tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{Result: result} }
}

// Router manages a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with initial at the bottom.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push adds s on top of the stack and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen and forwards result, if any, to the new top.
func (r *Router) Pop(result tea.Msg) tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	if result == nil {
		return nil
	}
	return r.forward(result)
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop(msg.Result)
	}
	return r.forward(msg)
}

// Broadcast delivers msg to every screen on the stack, bottom first.
// Background results such as finished generations use it so the screen
// that started the work sees them even under a form.
func (r *Router) Broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i, s := range r.stack {
		updated, cmd := s.Update(msg)
		r.stack[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (r *Router) forward(msg tea.Msg) tea.Cmd {
	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
