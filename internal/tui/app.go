// Package tui is the interactive session. Every action runs synchronously
// on the core service while the message that asked for it is handled, so
// one operation always finishes before the next key is read.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"mrmm/internal/core"
	"mrmm/internal/domain"
	"mrmm/internal/steam"
	"mrmm/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
)

// ViewType represents different screens in the TUI
type ViewType int

const (
	ViewLive ViewType = iota
	ViewStaging
	ViewProfiles
	ViewSettings
	viewCount
)

var tabNames = []string{"[1]Active", "[2]Staging", "[3]Profiles", "[4]Settings"}

// NavigateMsg is sent to change views
type NavigateMsg struct {
	View ViewType
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// capturer is a view that sometimes needs every key (text prompts)
type capturer interface {
	Capturing() bool
}

// App is the main TUI application model
type App struct {
	service     *core.Service
	keys        *KeyMap
	theme       views.Theme
	detect      func() (string, error)
	currentView ViewType
	width       int
	height      int
	err         error
	status      string
	showHelp    bool

	live     views.Live
	staging  views.Staging
	profiles views.Profiles
	settings views.Settings
}

// NewApp creates a new TUI application. A nil service gives an empty,
// read-only session.
func NewApp(service *core.Service) App {
	mode, dark := KeysVim, true
	if service != nil {
		mode, dark = service.Keybindings(), service.DarkTheme()
	}
	keys := NewKeyMap(mode)
	theme := views.NewTheme(dark)

	a := App{
		service:     service,
		keys:        keys,
		theme:       theme,
		detect:      steam.NewLocator(afero.NewOsFs()).DetectGameRoot,
		currentView: ViewLive,
		width:       80,
		height:      24,
		live:        views.NewLive(theme, keys),
		staging:     views.NewStaging(theme, keys),
		profiles:    views.NewProfiles(theme, keys),
		settings:    views.NewSettings(theme, keys, views.SettingsData{Keybindings: keys.Mode(), DarkTheme: dark}),
	}
	a.refresh()
	return a
}

// CurrentView returns the current view type
func (a App) CurrentView() ViewType {
	return a.currentView
}

// Err returns the last error shown, if any
func (a App) Err() error {
	return a.err
}

// Status returns the last success message shown
func (a App) Status() string {
	return a.status
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case NavigateMsg:
		a.currentView = msg.View
		return a, nil

	case ErrorMsg:
		a.err = msg.Err
		a.status = ""
		return a, nil
	}

	if handled, next := a.perform(msg); handled {
		return next, nil
	}

	// Delegate to current view's model
	return a.updateCurrentView(msg)
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if c, ok := a.currentModel().(capturer); ok && c.Capturing() {
		return a.updateCurrentView(msg)
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch {
	case a.keys.IsQuit(msg):
		return a, tea.Quit
	case a.keys.IsHelp(msg):
		a.showHelp = true
		return a, nil
	case a.keys.IsNextTab(msg):
		a.currentView = (a.currentView + 1) % viewCount
		return a, nil
	case a.keys.IsToggleTheme(msg):
		a.setDarkTheme(!a.theme.Dark)
		return a, nil
	}

	switch msg.String() {
	case "1", "2", "3", "4":
		a.currentView = ViewType(msg.String()[0] - '1')
		return a, nil
	}

	return a.updateCurrentView(msg)
}

func (a App) currentModel() tea.Model {
	switch a.currentView {
	case ViewStaging:
		return a.staging
	case ViewProfiles:
		return a.profiles
	case ViewSettings:
		return a.settings
	default:
		return a.live
	}
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var model tea.Model
	var cmd tea.Cmd

	switch a.currentView {
	case ViewLive:
		model, cmd = a.live.Update(msg)
		a.live = model.(views.Live)
	case ViewStaging:
		model, cmd = a.staging.Update(msg)
		a.staging = model.(views.Staging)
	case ViewProfiles:
		model, cmd = a.profiles.Update(msg)
		a.profiles = model.(views.Profiles)
	case ViewSettings:
		model, cmd = a.settings.Update(msg)
		a.settings = model.(views.Settings)
	}

	return a, cmd
}

// perform runs the service operation a view asked for
func (a App) perform(msg tea.Msg) (bool, App) {
	svc := a.service
	switch msg := msg.(type) {
	case views.StageFileMsg:
		if svc == nil {
			return true, a
		}
		res, err := svc.StageFile(msg.Path)
		if err == nil {
			a.succeed(stageSummary(res))
		}
		a.fail(err)

	case views.UnstageMsg:
		if svc == nil {
			return true, a
		}
		a.result(svc.Unstage(msg.Name), "Unstaged "+msg.Name)

	case views.ClearStagingMsg:
		if svc == nil {
			return true, a
		}
		svc.ClearStaging()
		a.succeed("Staging cleared")

	case views.ApplyStagingMsg:
		if svc == nil {
			return true, a
		}
		res, err := svc.ApplyStaging()
		if res != nil {
			a.succeed(applySummary(res))
		}
		a.fail(err)

	case views.RemoveLiveModMsg:
		if svc == nil {
			return true, a
		}
		a.result(svc.RemoveLiveMod(msg.Name), "Removed "+msg.Name)

	case views.ClearAllMsg:
		if svc == nil {
			return true, a
		}
		_, err := svc.ClearAll()
		a.result(err, "Cleared all mods")

	case views.LoadProfileMsg:
		if svc == nil {
			return true, a
		}
		_, err := svc.LoadProfile(msg.Name)
		a.result(err, "Loaded profile "+msg.Name)

	case views.SaveProfileMsg:
		if svc == nil {
			return true, a
		}
		_, err := svc.SaveAsProfile(msg.Name)
		a.result(err, "Saved profile "+msg.Name)

	case views.DeleteProfileMsg:
		if svc == nil {
			return true, a
		}
		a.result(svc.DeleteProfile(msg.Name), "Deleted profile "+msg.Name)

	case views.SetGameDirMsg:
		if svc == nil {
			return true, a
		}
		a.result(svc.SetGameDir(msg.Path), "Game directory set")

	case views.DetectGameDirMsg:
		if svc == nil {
			return true, a
		}
		dir, err := a.detect()
		if err == nil {
			err = svc.SetGameDir(dir)
		}
		a.result(err, "Found game in "+dir)

	case views.SettingsChangedMsg:
		if msg.Settings.DarkTheme != a.theme.Dark {
			a.setDarkTheme(msg.Settings.DarkTheme)
		}
		if msg.Settings.Keybindings != a.keys.Mode() {
			a.setKeybindings(msg.Settings.Keybindings)
		}

	default:
		return false, a
	}

	a.refresh()
	return true, a
}

func (a *App) succeed(status string) {
	a.status = status
	a.err = nil
}

func (a *App) fail(err error) {
	if err != nil {
		a.err = err
		a.status = ""
	}
}

func (a *App) result(err error, status string) {
	if err != nil {
		a.fail(err)
		return
	}
	a.succeed(status)
}

func (a *App) setDarkTheme(dark bool) {
	if a.service != nil {
		if err := a.service.SetDarkTheme(dark); err != nil {
			a.fail(err)
			return
		}
	}
	a.theme = views.NewTheme(dark)
	a.live = a.live.SetTheme(a.theme)
	a.staging = a.staging.SetTheme(a.theme)
	a.profiles = a.profiles.SetTheme(a.theme)
	a.settings = a.settings.SetTheme(a.theme)
	a.refresh()
}

func (a *App) setKeybindings(mode string) {
	if a.service != nil {
		if err := a.service.SetKeybindings(mode); err != nil {
			a.fail(err)
			return
		}
	}
	a.keys = NewKeyMap(mode)
	a.live = views.NewLive(a.theme, a.keys)
	a.staging = views.NewStaging(a.theme, a.keys)
	a.profiles = views.NewProfiles(a.theme, a.keys)
	a.settings = a.settings.SetKeys(a.keys)
	a.refresh()
}

// refresh reloads every view from the service. Problems reading state are
// shown unless an operation error is already displayed.
func (a *App) refresh() {
	settings := views.SettingsData{DarkTheme: a.theme.Dark, Keybindings: a.keys.Mode()}
	if a.service == nil {
		a.settings = a.settings.SetData(settings)
		return
	}
	svc := a.service
	settings.GameDir = svc.GameDir()
	a.settings = a.settings.SetData(settings)

	var errs []error

	var liveMods []views.LiveMod
	names, err := svc.LiveMods()
	if err != nil && !errors.Is(err, domain.ErrGameDirNotSet) {
		errs = append(errs, err)
	}
	origins, oerr := svc.Origins()
	if oerr != nil {
		errs = append(errs, oerr)
	}
	for _, n := range names {
		liveMods = append(liveMods, views.LiveMod{Name: n, Origin: origins[n].Origin})
	}
	a.live = a.live.SetData(svc.GameDir(), svc.CurrentProfile(), liveMods)

	var staged []views.StagedMod
	for _, e := range svc.Staged() {
		staged = append(staged, views.StagedMod{Name: e.File.Name, Origin: e.Origin})
	}
	a.staging = a.staging.SetData(staged)

	profiles, err := svc.ListProfiles()
	if err != nil {
		errs = append(errs, err)
	}
	a.profiles = a.profiles.SetData(profiles, svc.CurrentProfile())

	if a.err == nil && len(errs) > 0 {
		a.err = errors.Join(errs...)
	}
}

func stageSummary(res *core.StageResult) string {
	switch {
	case len(res.Added) == 0 && len(res.Duplicates) == 0:
		return "No .pak files found in " + res.Source
	case len(res.Duplicates) == 0:
		return fmt.Sprintf("Staged %d mods", len(res.Added))
	default:
		return fmt.Sprintf("Staged %d mods (%d already staged: %s)", len(res.Added), len(res.Duplicates), strings.Join(res.Duplicates, ", "))
	}
}

func applySummary(res *core.ApplyResult) string {
	msg := fmt.Sprintf("Applied %d mods", len(res.Applied))
	if len(res.AlreadyActive) > 0 {
		msg += fmt.Sprintf(", %d already active", len(res.AlreadyActive))
	}
	return msg
}

// View implements tea.Model
func (a App) View() string {
	t := a.theme

	header := t.Title.Render("mrmm - Marvel Rivals Mod Manager")

	var tabBar strings.Builder
	for i, tab := range tabNames {
		if ViewType(i) == a.currentView {
			tabBar.WriteString(t.ActiveTab.Render(tab) + "  ")
		} else {
			tabBar.WriteString(t.Tab.Render(tab) + "  ")
		}
	}

	content := a.currentModel().View()
	if a.showHelp {
		content = a.keys.FullHelp()
	}

	statusLine := ""
	if a.err != nil {
		statusLine = t.Error.Render(fmt.Sprintf("Error: %v", a.err))
	} else if a.status != "" {
		statusLine = t.Success.Render(a.status)
	}

	footer := t.Help.Render("q: quit  ?: help  T: theme  tab: next screen")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, tabBar.String(), content, statusLine, footer)
}
