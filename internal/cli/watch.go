package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fhagedorn/stempel/internal/cli/formatter"
	"github.com/fhagedorn/stempel/internal/domain"
	"github.com/fhagedorn/stempel/internal/service"
)

func newTimerWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the running session live",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal")
			}
			p := tea.NewProgram(newWatchModel(app))
			_, err := p.Run()
			return err
		},
	}
}

// watchTickMsg drives the once-per-second refresh.
type watchTickMsg time.Time

// watchStatusMsg carries a freshly loaded timer status.
type watchStatusMsg struct {
	status *service.TimerStatus
	err    error
}

// watchModel is the bubbletea Model for the live session view.
type watchModel struct {
	app     *App
	spinner spinner.Model

	status *service.TimerStatus
	err    error
}

func newWatchModel(app *App) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	return watchModel{app: app, spinner: sp}
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m watchModel) loadStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.app.Timer.Status(context.Background())
		return watchStatusMsg{status: status, err: err}
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadStatus(), watchTick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "b":
			// Toggle the break from inside the live view.
			return m, func() tea.Msg {
				ctx := context.Background()
				if m.status != nil && m.status.Active != nil && m.status.Active.IsOnBreak {
					_, err := m.app.Timer.StopBreak(ctx)
					if err != nil {
						return watchStatusMsg{err: err}
					}
				} else {
					_, err := m.app.Timer.StartBreak(ctx)
					if err != nil {
						return watchStatusMsg{err: err}
					}
				}
				status, err := m.app.Timer.Status(ctx)
				return watchStatusMsg{status: status, err: err}
			}
		}
		return m, nil

	case watchTickMsg:
		return m, tea.Batch(m.loadStatus(), watchTick())

	case watchStatusMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.status != nil {
			m.status = msg.status
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.err != nil {
		return formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.status == nil {
		return m.spinner.View() + " " + formatter.Dim("loading…") + "\n"
	}

	now := time.Now().In(m.app.location()).Format(domain.ClockLayout)
	body := formatter.FormatTimerStatus(m.status.Active, m.status.Stale, now)

	header := m.spinner.View() + " " + formatter.Bold("stempel watch")
	footer := formatter.Dim("b: toggle break   q: quit")

	return formatter.RenderBox("", header+"\n\n"+body+"\n\n"+footer) + "\n"
}
