package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/liststore"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
)

func newModel(t *testing.T) (Model, *liststore.Store) {
	t.Helper()
	s := liststore.New(memstore.New(), nil)
	require.NoError(t, s.Load())
	m := New(s, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, s
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestViewShowsSeededRows(t *testing.T) {
	m, _ := newModel(t)
	view := m.View()
	for _, want := range []string{"Maçã (3)", "Pão (2)", "Leite (1)", "../imagens/leite.jpeg"} {
		assert.Contains(t, view, want)
	}
}

func TestSpaceTogglesSelectedRow(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, down, space)
	it, _ := s.Find("Pão")
	assert.True(t, it.Bought)
	assert.Contains(t, m.View(), boxChecked)

	m = send(t, m, space)
	it, _ = s.Find("Pão")
	assert.False(t, it.Bought)
}

func TestRemoveSelectedRow(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("d"))
	_, found := s.Find("Maçã")
	assert.False(t, found)
	assert.NotContains(t, m.View(), "Maçã (3)")
	assert.Len(t, m.list.Items(), 2)
}

func TestAddFormMergesAndClearsInputs(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("a"))
	require.Equal(t, adding, m.mode)
	m = send(t, m, runes("Maçã"), tab, runes("2"), tab, runes("img2"), enter)

	assert.Equal(t, browsing, m.mode)
	it, _ := s.Find("Maçã")
	assert.Equal(t, 5, it.Quantity)
	assert.Equal(t, "img2", it.ImageURL)
	assert.Equal(t, 3, s.Len())
	for i := range m.inputs {
		assert.Empty(t, m.inputs[i].Value())
	}
	assert.Contains(t, m.View(), "added Maçã (5)")
}

func TestAddFormAppendsNewItem(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("a"), runes("Café"), tab, runes("1"), enter)

	items := s.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "Café", items[3].Name)
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Café", sel.Name)
}

func TestAddFormRejectsBadQuantity(t *testing.T) {
	m, s := newModel(t)
	before := s.Items()

	m = send(t, m, runes("a"), runes("Café"), tab, runes("muito"), enter)

	assert.Equal(t, adding, m.mode, "form stays open")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "Add item: quantity must be a non-negative integer")
	assert.Equal(t, before, s.Items())
	assert.Equal(t, "Café", m.inputs[fieldName].Value())
}

func TestAddFormEscCancels(t *testing.T) {
	m, s := newModel(t)
	m = send(t, m, runes("a"), runes("Café"), esc)
	assert.Equal(t, browsing, m.mode)
	assert.Equal(t, 3, s.Len())
}

func TestClearNeedsConfirmation(t *testing.T) {
	m, s := newModel(t)

	m = send(t, m, runes("C"), runes("n"))
	assert.Equal(t, 3, s.Len())

	m = send(t, m, runes("C"))
	assert.True(t, strings.Contains(m.View(), "Clear the whole list?"))
	m = send(t, m, runes("y"))
	assert.Zero(t, s.Len())
	assert.Empty(t, m.list.Items())
	assert.Contains(t, m.View(), "list cleared")
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
