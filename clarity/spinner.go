package clarity

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type stopSpinnerMsg struct{}

// spinnerModel shows an animated indicator next to the running command.
type spinnerModel struct {
	spinner  spinner.Model
	label    string
	quitting bool
}

func newSpinnerModel(label string) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		label:   label,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopSpinnerMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders nothing once stopped so the line is cleared.
func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return m.spinner.View() + " " + m.label
}

// startSpinner runs the spinner on w until the returned stop function is
// called. It never reads stdin, which belongs to the child, and leaves
// signals to the executor.
func startSpinner(w io.Writer, label string) (stop func()) {
	p := tea.NewProgram(newSpinnerModel(label),
		tea.WithInput(nil),
		tea.WithOutput(w),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	return func() {
		p.Send(stopSpinnerMsg{})
		<-done
	}
}
