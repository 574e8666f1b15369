package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minazuki-dev/todo-list/client"
	"github.com/minazuki-dev/todo-list/model"
)

// Model holds the client-side state: the ordered todo list, a loading
// flag and a dismissable error message, plus per-item in-flight flags
// that disable an item's controls while its own request is outstanding.
type Model struct {
	client *client.Client

	todos   []model.Todo
	loading bool
	errMsg  string

	cursor int
	adding bool
	input  textinput.Model
	spin   spinner.Model

	// in-flight flags keyed by todo id
	toggling map[string]bool
	deleting map[string]bool

	width int
}

// New creates the initial model
func New(c *client.Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 500 // matches the server-side title limit

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:   c,
		loading:  true,
		input:    ti,
		spin:     sp,
		toggling: make(map[string]bool),
		deleting: make(map[string]bool),
	}
}

// Run starts the Bubble Tea program
func Run() error {
	cfg := LoadConfig()
	m := New(client.New(cfg.ServerURL))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadTodosCmd(m.client))
}

// inFlight reports whether the item has a pending toggle or delete
func (m Model) inFlight(id string) bool {
	return m.toggling[id] || m.deleting[id]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading && len(m.toggling)+len(m.deleting) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case todosLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.todos = msg.Todos
		m.clampCursor()
		return m, nil

	case todoCreatedMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		// Newest on top, matching where the eye is after adding
		m.todos = append([]model.Todo{msg.Todo}, m.todos...)
		m.cursor = 0
		return m, nil

	case todoUpdatedMsg:
		delete(m.toggling, msg.ID)
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		for i := range m.todos {
			if m.todos[i].ID == msg.ID {
				m.todos[i] = msg.Todo
				break
			}
		}
		return m, nil

	case todoDeletedMsg:
		delete(m.deleting, msg.ID)
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		for i := range m.todos {
			if m.todos[i].ID == msg.ID {
				m.todos = append(m.todos[:i], m.todos[i+1:]...)
				break
			}
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

// updateAdding handles keys while the add form is focused
func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			return m, nil
		}
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		m.errMsg = ""
		return m, createTodoCmd(m.client, title)
	case "esc":
		m.adding = false
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateList handles keys in list mode
func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		// Dismiss the error banner; independent of any API call
		m.errMsg = ""
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		m.adding = true
		m.input.Focus()
		return m, textinput.Blink

	case "r":
		m.loading = true
		m.errMsg = ""
		return m, tea.Batch(m.spin.Tick, loadTodosCmd(m.client))

	case " ", "enter":
		if t, ok := m.selected(); ok && !m.inFlight(t.ID) {
			m.errMsg = ""
			m.toggling[t.ID] = true
			return m, tea.Batch(m.spin.Tick, toggleTodoCmd(m.client, t.ID, !t.Completed))
		}
		return m, nil

	case "d":
		if t, ok := m.selected(); ok && !m.inFlight(t.ID) {
			m.errMsg = ""
			m.deleting[t.ID] = true
			return m, tea.Batch(m.spin.Tick, deleteTodoCmd(m.client, t.ID))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) selected() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return model.Todo{}, false
	}
	return m.todos[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.todos) {
		m.cursor = len(m.todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todos"))
	if !m.loading {
		remaining := 0
		for _, t := range m.todos {
			if !t.Completed {
				remaining++
			}
		}
		if remaining == 0 {
			b.WriteString("   " + successStyle.Render("All done!"))
		} else {
			b.WriteString("   " + pendingStyle.Render(fmt.Sprintf("%d remaining", remaining)))
		}
	}
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errorBanner.Render(errorStyle.Render("✖ ")+m.errMsg+mutedStyle.Render("  esc to dismiss")) + "\n\n")
	}

	if m.adding {
		b.WriteString(m.input.View() + "\n\n")
	}

	if m.loading {
		b.WriteString(m.spin.View() + " Loading todos…\n")
	} else if len(m.todos) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to do. Press a to add a task.") + "\n")
	} else {
		for i, t := range m.todos {
			b.WriteString(m.renderItem(i, t) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("a add · space toggle · d delete · r reload · q quit"))
	return b.String()
}

func (m Model) renderItem(i int, t model.Todo) string {
	box := mutedStyle.Render(boxUnchecked)
	text := t.Title
	if t.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if i == m.cursor {
		prefix = selectedStyle.Render("> ")
	}

	line := fmt.Sprintf("%s%s %s", prefix, box, text)
	switch {
	case m.toggling[t.ID]:
		line += " " + mutedStyle.Render(m.spin.View()+"saving…")
	case m.deleting[t.ID]:
		line += " " + mutedStyle.Render(m.spin.View()+"deleting…")
	}
	return line
}
