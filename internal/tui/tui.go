// Package tui is the interactive terminal surface. Rows are rebuilt from
// the list store after every action; the model keeps no item state.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/liststore"
	"github.com/idilsaglam/shoplist/internal/model"
)

// row adapts model.Item to bubbles/list.Item
type row struct{ item model.Item }

func (r row) FilterValue() string { return r.item.Name }

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	r, ok := li.(row)
	if !ok {
		return
	}
	box, text := mutedStyle.Render(boxUnchecked), r.item.Label()
	if r.item.Bought {
		box, text = successStyle.Render(boxChecked), boughtStyle.Render(text)
	}
	line := box + " " + text
	if r.item.HasImage() {
		line += "  " + mutedStyle.Render(r.item.ImageURL)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render(">") + " "
	}
	fmt.Fprint(w, prefix+line)
}

type mode int

const (
	browsing mode = iota
	adding
	confirmClear
)

// form fields, in tab order
const (
	fieldName = iota
	fieldQuantity
	fieldImage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Item", "Quantity", "Image URL"}

var keys = struct {
	add, toggle, remove, clear, quit key.Binding
}{
	add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "bought")),
	remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
	clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear list")),
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model over a list store.
type Model struct {
	store *liststore.Store
	log   *zap.Logger

	list   list.Model
	mode   mode
	inputs [fieldCount]textinput.Model
	focus  int

	status    string
	statusErr bool

	width, height int
}

// New builds the model and renders the current list.
func New(s *liststore.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding {
		return []key.Binding{keys.add, keys.toggle, keys.remove, keys.clear}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := Model{store: s, log: log, list: l, width: 80, height: 24}
	placeholders := [fieldCount]string{"Maçã", "1", "https://... (optional)"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		m.inputs[i] = ti
	}
	m.inputs[fieldQuantity].CharLimit = 9

	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen.
func Run(s *liststore.Store, log *zap.Logger) error {
	_, err := tea.NewProgram(New(s, log), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

// refresh rebuilds the rows and header from the store.
func (m *Model) refresh() tea.Cmd {
	items := m.store.Items()
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, row{item: it})
	}
	idx := m.list.Index()
	cmd := m.list.SetItems(rows)
	if idx >= len(rows) {
		idx = len(rows) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	b, p := m.store.Stats()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Shopping list"),
		successStyle.Render("✔"), b,
		pendingStyle.Render("•"), p,
		accentStyle.Render("Total"), len(items),
	)
	return cmd
}

func (m *Model) resize() {
	h := m.height - 4
	switch m.mode {
	case adding:
		h -= fieldCount + 3
	case confirmClear:
		h -= 3
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status, m.statusErr = msg, isErr
}

func (m *Model) selectByName(name string) {
	for i, li := range m.list.Items() {
		if r, ok := li.(row); ok && r.item.Name == name {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) selected() (model.Item, bool) {
	r, ok := m.list.SelectedItem().(row)
	return r.item, ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case adding:
		return m.updateForm(msg)
	case confirmClear:
		return m.updateConfirm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit

	case key.Matches(km, keys.add):
		m.mode = adding
		m.focus = fieldName
		for i := range m.inputs {
			m.inputs[i].SetValue("")
			m.inputs[i].Blur()
		}
		m.setStatus("", false)
		m.resize()
		cmd := m.inputs[fieldName].Focus()
		return m, cmd

	case key.Matches(km, keys.toggle):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.ToggleBought(it.Name); err != nil {
			m.setStatus("save: "+err.Error(), true)
		} else {
			m.setStatus("", false)
		}
		cmd := m.refresh()
		return m, cmd

	case key.Matches(km, keys.remove):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.Remove(it.Name); err != nil {
			m.setStatus("save: "+err.Error(), true)
		} else {
			m.setStatus("removed "+it.Name, false)
		}
		cmd := m.refresh()
		return m, cmd

	case key.Matches(km, keys.clear):
		if m.store.Len() == 0 {
			return m, nil
		}
		m.mode = confirmClear
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "tab", "down":
			cmd := m.focusField((m.focus + 1) % fieldCount)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.focusField((m.focus + fieldCount - 1) % fieldCount)
			return m, cmd
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) closeForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.mode = browsing
	m.resize()
}

// submit adds the form's item; rejected input keeps the form open.
func (m Model) submit() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	err := m.store.AddInput(name, m.inputs[fieldQuantity].Value(), m.inputs[fieldImage].Value())
	if err != nil {
		m.log.Debug("add rejected", zap.Error(err))
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.closeForm()
	cmd := m.refresh()
	m.selectByName(name)
	if it, ok := m.store.Find(name); ok {
		m.setStatus("added "+it.Label(), false)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.mode = browsing
	m.resize()
	if km.String() != "y" && km.String() != "Y" {
		m.setStatus("", false)
		return m, nil
	}
	if err := m.store.Clear(); err != nil {
		m.setStatus("save: "+err.Error(), true)
	} else {
		m.setStatus("list cleared", false)
	}
	cmd := m.refresh()
	return m, cmd
}

func (m Model) View() string {
	content := m.list.View()

	switch m.mode {
	case adding:
		var b strings.Builder
		title := "Add item"
		if m.statusErr && m.status != "" {
			title += ": " + errorStyle.Render(m.status)
		}
		b.WriteString(title)
		for i, in := range m.inputs {
			b.WriteString("\n" + labelStyle.Render(fieldLabels[i]) + in.View())
		}
		b.WriteString("\n" + helpStyle.Render("tab next field • enter save • esc cancel"))
		content += "\n" + frameStyle.Render(b.String())
	case confirmClear:
		content += "\n" + frameStyle.Render(errorStyle.Render("Clear the whole list?")+" "+helpStyle.Render("y / n"))
	default:
		if m.status != "" {
			style := successStyle
			if m.statusErr {
				style = errorStyle
			}
			content += "\n" + style.Render(m.status)
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(frameStyle.Render(content))
}
