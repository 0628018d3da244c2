package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/yeelan/internal/discovery"
)

// Messages for async operations
type scanStartMsg struct{}
type scanCompleteMsg struct {
	devices []*discovery.Device
	err     error
}
type toggleResultMsg struct {
	id  string
	err error
}

// pickerKeyMap defines key bindings for the picker screen
type pickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Rescan key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Rescan, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Rescan, k.Quit},
	}
}

// lightItem wraps a discovered device for use with bubbles/list
type lightItem struct {
	device *discovery.Device
}

// FilterValue lets the list filter by name, id or model
func (i lightItem) FilterValue() string {
	return i.device.DisplayName() + " " + i.device.ID + " " + i.device.Model
}

// Title returns the light's display name for the list
func (i lightItem) Title() string {
	return i.device.DisplayName()
}

// Description returns light details for the list
func (i lightItem) Description() string {
	return fmt.Sprintf("%s • %s • power %s • bright %d%%",
		i.device.Model, i.device.Location, i.device.Power, i.device.Brightness)
}

// Model represents the light picker screen state
type Model struct {
	scanning bool
	timeout  time.Duration
	lights   list.Model
	spinner  spinner.Model
	help     help.Model
	keys     pickerKeyMap
	status   string
	err      error
	width    int
	height   int
}

// NewModel creates a new picker model that scans with the given timeout
func NewModel(timeout time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(primaryColor).BorderLeftForeground(primaryColor)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(primaryColor).BorderLeftForeground(primaryColor)

	lights := list.New([]list.Item{}, delegate, 0, 0)
	lights.Title = "Discovered Lights"
	lights.SetShowStatusBar(false)
	lights.SetFilteringEnabled(true)
	lights.Styles.Title = titleStyle

	keys := pickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle power"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}

	return Model{
		timeout: timeout,
		lights:  lights,
		spinner: s,
		help:    help.New(),
		keys:    keys,
	}
}

// Init starts scanning immediately
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return scanStartMsg{} },
		scanLights(m.timeout),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// let list filtering consume keys first
		if m.lights.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Rescan):
			if m.scanning {
				break
			}
			m.lights.SetItems([]list.Item{})
			m.err = nil
			m.status = ""
			return m, tea.Batch(
				func() tea.Msg { return scanStartMsg{} },
				scanLights(m.timeout),
				m.spinner.Tick,
			)

		case key.Matches(msg, m.keys.Toggle):
			if item, ok := m.lights.SelectedItem().(lightItem); ok {
				m.status = fmt.Sprintf("toggling %s...", item.device.DisplayName())
				return m, togglePower(item.device)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.lights.SetWidth(msg.Width - 4)
		m.lights.SetHeight(msg.Height - 8)

	case scanStartMsg:
		m.scanning = true

	case scanCompleteMsg:
		m.scanning = false
		m.err = msg.err
		items := make([]list.Item, len(msg.devices))
		for i, device := range msg.devices {
			items[i] = lightItem{device: device}
		}
		m.lights.SetItems(items)

	case toggleResultMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("toggle failed: %v", msg.err))
		} else {
			m.status = statusStyle.Render(fmt.Sprintf("toggled %s", msg.id))
		}

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if !m.scanning {
		m.lights, cmd = m.lights.Update(msg)
	}
	return m, cmd
}

// View renders the picker screen
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = minTerminalWidth
	}
	if width > maxContentWidth {
		width = maxContentWidth
	}

	var content string
	switch {
	case m.scanning:
		content = m.renderScanning(width)
	case m.err != nil:
		content = m.renderError()
	case len(m.lights.Items()) == 0:
		content = m.renderEmpty()
	default:
		content = m.lights.View()
	}

	var b strings.Builder
	b.WriteString(content)
	if m.status != "" {
		b.WriteString("\n  " + m.status)
	}
	b.WriteString("\n" + helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderScanning renders a centered scanning indicator
func (m Model) renderScanning(width int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		titleStyle.Render(fmt.Sprintf("%s SEARCHING FOR LIGHTS", m.spinner.View())),
		"",
		subtitleStyle.Render(fmt.Sprintf("Querying %s:%d...", discovery.MulticastAddr, discovery.MulticastPort)),
		"",
	)
	return lipgloss.Place(width, 0, lipgloss.Center, lipgloss.Top, content)
}

// renderError renders a failed scan with hints
func (m Model) renderError() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(errorStyle.Render(fmt.Sprintf("Scan failed: %v", m.err)))
	b.WriteString("\n\n  Troubleshooting:\n")
	b.WriteString("    • Check that LAN Control is enabled in the Yeelight app\n")
	b.WriteString("    • Verify your firewall allows UDP port 1982\n")
	b.WriteString("    • Press 'r' to rescan\n")
	return b.String()
}

// renderEmpty renders the no-lights-found message
func (m Model) renderEmpty() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(warningStyle.Render("⚠ No lights found on your network"))
	b.WriteString("\n\n  Troubleshooting:\n")
	b.WriteString("    • Check that LAN Control is enabled in the Yeelight app\n")
	b.WriteString("    • Make sure the lights are on the same network segment\n")
	b.WriteString("    • Press 'r' to rescan with a longer timeout\n")
	return b.String()
}

// scanLights is a command that performs one discovery session
func scanLights(timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		client, err := discovery.NewClient()
		if err != nil {
			return scanCompleteMsg{err: err}
		}
		defer client.Close()

		devices, err := client.Discover(timeout)
		return scanCompleteMsg{devices: devices, err: err}
	}
}

// togglePower is a command that flips one light's power state over a
// lazily opened control connection
func togglePower(device *discovery.Device) tea.Cmd {
	return func() tea.Msg {
		conn, err := device.Connect()
		if err != nil {
			return toggleResultMsg{id: device.DisplayName(), err: err}
		}
		defer conn.Close()

		return toggleResultMsg{id: device.DisplayName(), err: conn.Toggle()}
	}
}

// Run launches the interactive picker and blocks until the user quits.
func Run(timeout time.Duration) error {
	program := tea.NewProgram(NewModel(timeout), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}
	return nil
}
