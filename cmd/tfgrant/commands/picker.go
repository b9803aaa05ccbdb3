package commands

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pickerModel wraps the filepicker so a bare `tfgrant` run can browse
// to a Terraform directory instead of requiring --path.
type pickerModel struct {
	picker   filepicker.Model
	selected string
	quit     bool
}

func initialPickerModel() pickerModel {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.CurrentDirectory, _ = os.Getwd()
	return pickerModel{picker: fp}
}

func (m pickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quit || m.selected != "" {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).
		Render("? Which Terraform directory do you want to analyze?")
	return title + "\n\n" + m.picker.View() + "\n(Press [enter] to select, [q] to keep the current directory)\n"
}

func promptForDirectory() (string, error) {
	p := tea.NewProgram(initialPickerModel())
	m, err := p.Run()
	if err != nil {
		return "", err
	}
	if pm, ok := m.(pickerModel); ok {
		return pm.selected, nil
	}
	return "", nil
}

func isInteractive() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
