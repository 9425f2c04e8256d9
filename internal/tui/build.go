package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/gerunddev/mdsite/internal/site"
	"github.com/gerunddev/mdsite/internal/styles"
)

// BuildMsg is sent when the build finishes
type BuildMsg struct {
	Result *site.BuildResult
	Err    error
}

// StatusMsg replaces the status line shown next to the spinner
type StatusMsg string

// BuildModel is the Bubble Tea model for the build progress display
type BuildModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *site.BuildResult
	err      error
}

// InitBuildModel creates a new build progress model
func InitBuildModel() BuildModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return BuildModel{
		spinner: s,
		status:  "Building site...",
	}
}

// Result returns the finished build, if any
func (m BuildModel) Result() (*site.BuildResult, error) {
	return m.result, m.err
}

func (m BuildModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m BuildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case BuildMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m BuildModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s %s\n\n", m.spinner.View(), m.status)
	}
	return Summary(m.result, m.err)
}

// Summary renders the outcome of a build for the terminal
func Summary(result *site.BuildResult, err error) string {
	if err != nil {
		return styles.ErrorStyle.Render("✗ Build failed: "+err.Error()) + "\n"
	}

	msg := styles.SuccessStyle.Render(fmt.Sprintf("✓ Generated %d page(s)", len(result.Pages)))
	if result.Skipped > 0 {
		msg += ", " + styles.DimStyle.Render(fmt.Sprintf("%d skipped", result.Skipped))
	}
	if len(result.Errors) > 0 {
		msg += ", " + styles.ErrorStyle.Render(fmt.Sprintf("%d error(s)", len(result.Errors)))
	}
	msg += "\n"
	for _, e := range result.Errors {
		msg += styles.ErrorStyle.Render("  ✗ "+e.Error()) + "\n"
	}

	duration := result.EndTime.Sub(result.StartTime).Round(time.Millisecond)
	msg += styles.DimStyle.Render(fmt.Sprintf("%d static file(s), %s written in %v",
		result.StaticFiles, humanize.Bytes(uint64(result.Bytes)), duration)) + "\n"

	return msg
}
