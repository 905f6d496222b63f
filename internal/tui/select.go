// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	defaultListWidth  = 48
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a genre.
	ActionSelected
	// ActionAllGenres indicates the user asked for no genre filter.
	ActionAllGenres
	// ActionStopped indicates the user left without choosing.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *tmdb.Genre
}

// GenreID returns the selected genre id, or tmdb.AllGenres when none was selected.
func (r SelectionResult) GenreID() int {
	if r.Action == ActionSelected && r.Selection != nil {
		return r.Selection.ID
	}
	return tmdb.AllGenres
}

type genreItem struct {
	tmdb.Genre
}

func (i genreItem) FilterValue() string {
	return i.Name
}

type itemStyles struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	idStyle  lipgloss.Style
}

func newItemStyles() itemStyles {
	return itemStyles{
		normal: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("252")),
		selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("230")).
			Bold(true),
		idStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type genreDelegate struct {
	styles itemStyles
}

func newDelegate() genreDelegate {
	return genreDelegate{styles: newItemStyles()}
}

func (d genreDelegate) Height() int                         { return 1 }
func (d genreDelegate) Spacing() int                        { return 0 }
func (d genreDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d genreDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	genre, ok := item.(genreItem)
	if !ok {
		return
	}

	style := d.styles.normal
	if idx == m.Index() {
		style = d.styles.selected
	}
	line := style.Render(genre.Name) + " " + d.styles.idStyle.Render(fmt.Sprintf("#%d", genre.ID))
	_, _ = fmt.Fprint(w, line)
}

type model struct {
	list   list.Model
	result SelectionResult
}

func newModel(genres []tmdb.Genre) *model {
	listItems := make([]list.Item, len(genres))
	for i, genre := range genres {
		listItems[i] = genreItem{Genre: genre}
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:   l,
		result: SelectionResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(genreItem); ok {
				genre := selected.Genre
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &genre,
				}
				return m, tea.Quit
			}
		case "a":
			m.result = SelectionResult{Action: ActionAllGenres}
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 20)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render("Pick a genre to discover")
	help := helpStyle.Render("Up/Down navigate | Enter select | a all genres | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectGenre presents an interactive picker over genres.
// An empty list resolves to ActionAllGenres without starting the UI.
func SelectGenre(genres []tmdb.Genre) (SelectionResult, error) {
	if len(genres) == 0 {
		return SelectionResult{Action: ActionAllGenres}, nil
	}

	finalModel, err := runProgram(newModel(genres))
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
