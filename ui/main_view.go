package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wardrobe/engine"
	"wardrobe/errors"
	"wardrobe/logger"
	"wardrobe/models"
)

// WeatherMsg is sent when the temperature lookup completes
type WeatherMsg struct {
	seq    int
	layers int
	tempF  float64
	err    error
}

// garmentItem wraps a Garment and implements the list.Item interface
type garmentItem struct {
	garment models.Garment
}

// FilterValue implements list.Item
func (i garmentItem) FilterValue() string {
	return i.garment.Name + " " + i.garment.Color + " " + string(i.garment.Category)
}

// Title implements list.DefaultItem
func (i garmentItem) Title() string {
	return i.garment.Name
}

// Description implements list.DefaultItem
func (i garmentItem) Description() string {
	worn := "never worn"
	if !i.garment.LastWorn.Equal(models.DefaultLastWorn) {
		worn = "last worn " + i.garment.LastWorn.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s • %s • %s", i.garment.Category, i.garment.Color, worn)
}

var docStyle = lipgloss.NewStyle().Margin(1, 2)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF0000")).
	Bold(true)

var warningStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FFAA00"))

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00AA00"))

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00FFFF")).
	Bold(true)

var subtitleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#888888"))

// screenState represents the current screen being displayed
type screenState int

const (
	screenMenu screenState = iota
	screenPrompt
	screenList
	screenWeather
	screenOutfits
)

// action is the store operation a prompt sequence ends in
type action int

const (
	actionAdd action = iota
	actionRemove
	actionWear
)

func (a action) String() string {
	switch a {
	case actionAdd:
		return "Add clothing item"
	case actionRemove:
		return "Remove clothing item"
	default:
		return "Update worn time for clothing item"
	}
}

type promptStep int

const (
	stepCategory promptStep = iota
	stepName
	stepColor
)

// Deps are the collaborators the shell drives
type Deps struct {
	Wardrobe *engine.Wardrobe
	Composer *engine.Composer
	Weather  engine.TemperatureSource // nil skips the lookup
	City     string
	Logger   *slog.Logger
	Now      func() time.Time
	Warning  string // shown on the menu at startup, e.g. a failed load
}

// model represents the Bubble Tea application model
type model struct {
	screen        screenState
	action        action
	step          promptStep
	input         textinput.Model
	list          list.Model
	category      models.Category
	name          string
	suggestions   engine.Suggestions
	tempF         float64
	weatherErr    error
	weatherSeq    int
	cancelWeather context.CancelFunc
	errorMessage  string
	statusMessage string
	width         int
	height        int

	wardrobe *engine.Wardrobe
	composer *engine.Composer
	weather  engine.TemperatureSource
	city     string
	logger   *slog.Logger
	now      func() time.Time
}

// Init sets the terminal title
func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle("Wardrobe")
}

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height

		listHeight := msg.Height - 6
		if listHeight < 10 {
			listHeight = 10
		}
		m.list.SetSize(msg.Width-4, listHeight)
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenPrompt:
		return m.updatePrompt(msg)
	case screenList:
		return m.updateList(msg)
	case screenWeather:
		return m.updateWeather(msg)
	case screenOutfits:
		return m.updateOutfits(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles the main menu keys
func (m model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q":
		m.logger.Info("exiting wardrobe interface")
		return m, tea.Quit
	case "1":
		return m.startPrompt(actionAdd)
	case "2":
		return m.startPrompt(actionRemove)
	case "3":
		items := make([]list.Item, 0, m.wardrobe.Len())
		for _, g := range m.wardrobe.All() {
			items = append(items, garmentItem{garment: g})
		}
		m.list.ResetFilter()
		m.list.SetItems(items)
		m.screen = screenList
		m.clearMessages()
		return m, nil
	case "4":
		ctx, cancel := context.WithCancel(context.Background())
		m.weatherSeq++
		m.cancelWeather = cancel
		m.screen = screenWeather
		m.clearMessages()
		return m, fetchWeatherCmd(ctx, m.weather, m.city, m.weatherSeq)
	case "5":
		return m.startPrompt(actionWear)
	default:
		m.errorMessage = "Invalid choice. Try again."
		m.statusMessage = ""
		return m, nil
	}
}

// startPrompt begins the category, name, color sequence for a
func (m model) startPrompt(a action) (tea.Model, tea.Cmd) {
	m.screen = screenPrompt
	m.action = a
	m.step = stepCategory
	m.category = ""
	m.name = ""
	m.clearMessages()
	m.resetInput("e.g. Shirts")
	return m, textinput.Blink
}

func (m *model) resetInput(placeholder string) {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.Focus()
}

// updatePrompt collects one field per enter and runs the action on the last
func (m model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyEsc:
		m.backToMenu()
		m.statusMessage = "Cancelled"
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		switch m.step {
		case stepCategory:
			category, err := models.ParseCategory(value)
			if err != nil {
				m.backToMenu()
				m.errorMessage = "Invalid type, try again."
				return m, nil
			}
			m.category = category
			m.step = stepName
			m.resetInput("e.g. Oxford")
			return m, nil

		case stepName:
			if value == "" {
				m.errorMessage = "Name cannot be empty"
				return m, nil
			}
			m.name = value
			m.step = stepColor
			m.errorMessage = ""
			m.resetInput("e.g. navy")
			return m, nil

		case stepColor:
			if value == "" {
				m.errorMessage = "Color cannot be empty"
				return m, nil
			}
			m.backToMenu()
			m.apply(value)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply runs the pending action against the wardrobe
func (m *model) apply(color string) {
	color = models.NormalizeColor(color)
	var err error
	switch m.action {
	case actionAdd:
		if err = m.wardrobe.Add(m.name, m.category, color); err == nil {
			m.statusMessage = fmt.Sprintf("Item added: %s (%s) to %s", m.name, color, m.category)
		}
	case actionRemove:
		if err = m.wardrobe.Remove(m.name, m.category, color); err == nil {
			m.statusMessage = fmt.Sprintf("Item removed: %s (%s)", m.name, color)
		}
	case actionWear:
		if err = m.wardrobe.UpdateLastWorn(m.name, m.category, color, m.now()); err == nil {
			m.statusMessage = fmt.Sprintf("Last worn time updated for %s", m.name)
		}
	}

	if err != nil {
		m.logger.Warn("wardrobe operation failed", "action", m.action.String(), "category", m.category, "name", m.name, "color", color, "error", err)
		m.errorMessage = err.Error()
		return
	}
	m.logger.Info("wardrobe updated", "action", m.action.String(), "category", m.category, "name", m.name, "color", color)
}

// updateList lets the list handle navigation and filtering
func (m model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "q":
			m.backToMenu()
			return m, nil
		case "esc":
			if m.list.FilterState() != list.FilterApplied {
				m.backToMenu()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateWeather waits for the lookup and composes both outfits.
// esc or q abandons the lookup.
func (m model) updateWeather(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			m.stopWeather()
			m.backToMenu()
			m.statusMessage = "Weather lookup cancelled"
		}
		return m, nil
	}

	result, ok := msg.(WeatherMsg)
	if !ok || result.seq != m.weatherSeq {
		return m, nil
	}
	m.stopWeather()

	m.tempF = result.tempF
	m.weatherErr = result.err
	if result.err != nil {
		m.logger.Warn("using default layer count", "city", m.city, "layers", result.layers, "error", result.err)
	}

	suggestions, err := m.composer.GenerateForLayers(result.layers)
	if err != nil {
		m.logger.Warn("outfit generation failed", "error", err)
		m.backToMenu()
		m.errorMessage = err.Error()
		return m, nil
	}
	m.suggestions = suggestions
	m.screen = screenOutfits
	return m, nil
}

// updateOutfits records the chosen outfit: 1, 2 or any other key for none
func (m model) updateOutfits(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	choice := engine.ParseChoice(key.String())
	chosen, worn, err := m.composer.Select(m.suggestions, choice, m.now())
	m.backToMenu()
	m.suggestions = engine.Suggestions{}
	switch {
	case err != nil:
		m.errorMessage = err.Error()
	case worn:
		m.statusMessage = fmt.Sprintf("Wearing the %s outfit today", chosen.Kind)
	default:
		m.statusMessage = "No outfit selected"
	}
	return m, nil
}

func (m *model) stopWeather() {
	if m.cancelWeather != nil {
		m.cancelWeather()
		m.cancelWeather = nil
	}
}

func (m *model) backToMenu() {
	m.screen = screenMenu
	m.input.Blur()
	m.clearMessages()
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.statusMessage = ""
}

// View renders the UI
func (m model) View() string {
	switch m.screen {
	case screenPrompt:
		return m.viewPrompt()
	case screenList:
		return m.viewList()
	case screenWeather:
		return docStyle.Render(titleStyle.Render("Generate outfit") + "\n\n" +
			subtitleStyle.Render(fmt.Sprintf("⟳ Checking the weather in %s...", m.city)) +
			subtitleStyle.Render("\n\nPress ESC to cancel"))
	case screenOutfits:
		return m.viewOutfits()
	default:
		return m.viewMenu()
	}
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Wardrobe") + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d items", m.wardrobe.Len())) + "\n\n")
	b.WriteString("1. Add clothing item\n")
	b.WriteString("2. Remove clothing item\n")
	b.WriteString("3. Display wardrobe\n")
	b.WriteString("4. Generate outfit\n")
	b.WriteString("5. Update worn time for clothing item\n")
	b.WriteString("q. Quit\n")
	b.WriteString(m.viewMessages())
	return docStyle.Render(b.String())
}

func (m model) viewPrompt() string {
	var label string
	switch m.step {
	case stepCategory:
		names := make([]string, len(models.Categories))
		for i, c := range models.Categories {
			names[i] = string(c)
		}
		label = fmt.Sprintf("Enter the type of the clothing item: (%s)", strings.Join(names, ", "))
	case stepName:
		label = "Enter the name of the clothing item:"
	case stepColor:
		label = "Enter the main color of the clothing item:"
	}

	s := titleStyle.Render(m.action.String()) + "\n\n" +
		label + "\n" +
		m.input.View() + "\n" +
		m.viewMessages() +
		subtitleStyle.Render("\n\nPress Enter to continue | ESC to cancel")
	return docStyle.Render(s)
}

func (m model) viewList() string {
	help := subtitleStyle.Render("\n\nKeys: /=filter  esc/q=back")
	return m.list.View() + help
}

func (m model) viewOutfits() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Generate outfit") + "\n\n")

	layers := m.suggestions.Layers
	if m.weatherErr != nil {
		b.WriteString(warningStyle.Render(fmt.Sprintf("⚠ Weather unavailable, using %d extra layers", layers)) + "\n\n")
	} else {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%.1f°F in %s, %d extra layers", m.tempF, m.city, layers)) + "\n\n")
	}

	for i, outfit := range []models.Outfit{m.suggestions.Monochrome, m.suggestions.Complementary} {
		heading := fmt.Sprintf("Outfit %d (%s):", i+1, outfit.Kind)
		if outfit.Kind == models.Monochrome && !outfit.SingleColor() {
			heading += " mixed colors"
		}
		b.WriteString(heading + "\n")
		for _, g := range outfit.Garments {
			b.WriteString(fmt.Sprintf("   %s %s\n", g.Color, g.Name))
		}
		for _, note := range outfit.Notes {
			b.WriteString(warningStyle.Render("   "+note) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Enter which outfit you would like to wear today (1 or 2) or press another key for none")
	return docStyle.Render(b.String())
}

func (m model) viewMessages() string {
	s := ""
	if m.errorMessage != "" {
		s += errorStyle.Render("\n⚠ " + m.errorMessage)
	}
	if m.statusMessage != "" {
		s += statusStyle.Render("\n✓ " + m.statusMessage)
	}
	return s
}

// NewModel creates the shell over an already loaded wardrobe
func NewModel(deps Deps) (model, error) {
	if deps.Wardrobe == nil || deps.Composer == nil {
		return model{}, errors.Validation("ui requires a wardrobe and a composer")
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 80, 20)
	l.Title = "Wardrobe Contents"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40

	return model{
		screen:       screenMenu,
		errorMessage: deps.Warning,
		input:        ti,
		list:         l,
		width:        80,
		height:       24,
		wardrobe:     deps.Wardrobe,
		composer:     deps.Composer,
		weather:      deps.Weather,
		city:         deps.City,
		logger:       deps.Logger,
		now:          deps.Now,
	}, nil
}

// fetchWeatherCmd looks up the temperature in the background.
// Failures fall back to engine.DefaultLayers; seq ties the result to one request.
func fetchWeatherCmd(ctx context.Context, src engine.TemperatureSource, city string, seq int) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			return WeatherMsg{seq: seq, layers: engine.DefaultLayers, err: errors.WeatherUnavailable("no weather source configured")}
		}
		layers, temp, err := engine.LayersFor(ctx, src, city)
		return WeatherMsg{seq: seq, layers: layers, tempF: temp, err: err}
	}
}
