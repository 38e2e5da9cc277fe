package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/session"
)

const demoHint = "admin@club.com / password123"

// loginDoneMsg carries the outcome of State.Login
type loginDoneMsg struct {
	err error
}

// searchDoneMsg carries the outcome of one dispatched search
type searchDoneMsg struct {
	dispatch session.Dispatch
	players  []response.Player
	err      error
}

// loginField indexes the inputs on the login screen
type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
)

// App is the root Bubbletea model
type App struct {
	ctx   context.Context
	state *session.State

	email      textinput.Model
	password   textinput.Model
	search     textinput.Model
	spinner    spinner.Model
	focus      loginField
	submitting bool

	width  int
	height int
}

// NewApp creates the TUI over a client-side session state
func NewApp(ctx context.Context, state *session.State) App {
	email := newInput("Email address")
	email.Focus()

	password := newInput("Password")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := newInput("Search by name (e.g., 'John')")
	search.CharLimit = 100
	if state.Phase() == session.LoggedIn {
		email.Blur()
		search.Focus()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return App{
		ctx:      ctx,
		state:    state,
		email:    email,
		password: password,
		search:   search,
		spinner:  sp,
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, state *session.State) error {
	_, err := tea.NewProgram(NewApp(ctx, state), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case loginDoneMsg:
		a.submitting = false
		if msg.err == nil {
			a.password.SetValue("")
			a.email.Blur()
			a.password.Blur()
			a.search.SetValue("")
			a.search.Focus()
		}
		return a, nil

	case searchDoneMsg:
		// Only a result that ended the session resets the login form
		if a.state.Resolve(msg.dispatch, msg.players, msg.err) && a.state.Phase() == session.LoggedOut {
			return a.toLogin(), nil
		}
		return a, nil

	case spinner.TickMsg:
		if !a.submitting && !a.state.Snapshot().Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.state.Phase() == session.LoggedIn {
		return a.updateSearch(msg)
	}
	return a.updateLogin(msg)
}

func (a App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			return a.toggleFocus(), nil
		case tea.KeyEnter:
			if a.submitting {
				return a, nil
			}
			a.submitting = true
			return a, tea.Batch(a.loginCmd(), a.spinner.Tick)
		}
	}

	var cmd tea.Cmd
	if a.focus == fieldEmail {
		a.email, cmd = a.email.Update(msg)
	} else {
		a.password, cmd = a.password.Update(msg)
	}
	return a, cmd
}

func (a App) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc:
			return a, tea.Quit
		case tea.KeyCtrlO:
			a.state.Logout()
			return a.toLogin(), nil
		}
	}

	before := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	if a.search.Value() == before {
		return a, cmd
	}

	d, ok := a.state.SetQuery(a.search.Value())
	if !ok {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.searchCmd(d), a.spinner.Tick)
}

func (a App) toggleFocus() App {
	if a.focus == fieldEmail {
		a.focus = fieldPassword
		a.email.Blur()
		a.password.Focus()
	} else {
		a.focus = fieldEmail
		a.password.Blur()
		a.email.Focus()
	}
	return a
}

func (a App) toLogin() App {
	a.search.SetValue("")
	a.search.Blur()
	a.password.SetValue("")
	a.password.Blur()
	a.focus = fieldEmail
	a.email.Focus()
	return a
}

func (a App) loginCmd() tea.Cmd {
	state, ctx := a.state, a.ctx
	email, password := strings.TrimSpace(a.email.Value()), a.password.Value()
	return func() tea.Msg {
		return loginDoneMsg{err: state.Login(ctx, email, password)}
	}
}

func (a App) searchCmd(d session.Dispatch) tea.Cmd {
	state, ctx := a.state, a.ctx
	return func() tea.Msg {
		players, err := state.Fetch(ctx, d)
		return searchDoneMsg{dispatch: d, players: players, err: err}
	}
}

func (a App) View() string {
	snap := a.state.Snapshot()
	if snap.Phase == session.LoggedIn {
		return a.searchView(snap)
	}
	return a.loginView(snap)
}

func (a App) loginView(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pickleball Organiser"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Please sign in to manage sessions"))
	b.WriteString("\n\n")

	if snap.AuthMessage != "" {
		b.WriteString(errorStyle.Render(snap.AuthMessage))
		b.WriteString("\n\n")
	}

	b.WriteString(a.email.View())
	b.WriteString("\n")
	b.WriteString(a.password.View())
	b.WriteString("\n\n")

	if a.submitting {
		b.WriteString(a.spinner.View() + " Signing in...")
	} else {
		b.WriteString(mutedStyle.Render("enter sign in • tab switch field • esc quit"))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Demo User: " + demoHint))

	return panelStyle.Render(b.String())
}

func (a App) searchView(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session Organiser"))
	b.WriteString(mutedStyle.Render("  ctrl+o sign out • esc quit"))
	b.WriteString("\n\n")
	b.WriteString(nameStyle.Render("Find Players"))
	b.WriteString("\n")

	line := a.search.View()
	if snap.Loading {
		line += " " + a.spinner.View()
	}
	b.WriteString(line)
	b.WriteString("\n\n")

	switch {
	case len(snap.Results) > 0:
		for _, p := range snap.Results {
			b.WriteString(renderPlayer(p, a.width))
			b.WriteString("\n")
		}
	case snap.EmptyMessage != "":
		b.WriteString(mutedStyle.Render(snap.EmptyMessage))
		b.WriteString("\n")
	}

	return b.String()
}

func renderPlayer(p response.Player, width int) string {
	left := nameStyle.Render(p.Name) + "\n" + mutedStyle.Render(p.Email)
	right := mutedStyle.Render("DUPR") + "\n" + ratingStyle.Render(p.RatingLabel())

	gap := 4
	if inner := width - 4 - lipgloss.Width(left) - lipgloss.Width(right); inner > gap {
		gap = inner
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), lipgloss.NewStyle().Align(lipgloss.Right).Render(right))
	return cardStyle.Render(row)
}
