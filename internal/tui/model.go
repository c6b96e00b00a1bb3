package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/framecut/framecut/internal/core/config"
	"github.com/framecut/framecut/internal/core/edit"
	"github.com/framecut/framecut/internal/core/history"
	"github.com/framecut/framecut/internal/core/interaction"
	"github.com/framecut/framecut/internal/core/layout"
	"github.com/framecut/framecut/internal/core/logging"
	"github.com/framecut/framecut/internal/core/selection"
	"github.com/framecut/framecut/internal/core/timecode"
	"github.com/framecut/framecut/internal/core/timeline"
	"github.com/framecut/framecut/internal/store/jsonfile"
)

// Vertical chrome: ruler above the tracks, status and help below.
const (
	rulerRows  = 1
	footerRows = 2
)

// Payload defaults for click-tool insertions.
const (
	defaultTextContent        = "Title"
	defaultKeyframeProperty   = "opacity"
	defaultKeyframeValue      = 1.0
	defaultTransitionDuration = timeline.Frame(12)
)

// marqueeDrag is an in-progress rectangle selection in viewport pixels.
type marqueeDrag struct {
	x0, y0   float64
	x1, y1   float64
	additive bool
}

// reloadMsg reports an external change to the project file.
type reloadMsg struct {
	ev jsonfile.ReloadEvent
}

// Model is the Bubble Tea model for the timeline editor.
type Model struct {
	cfg    *config.Config
	store  *jsonfile.ProjectStore
	reload <-chan jsonfile.ReloadEvent

	project *jsonfile.Project
	engine  *edit.Engine
	machine *interaction.Machine
	undo    *history.Stack

	mapper        timecode.Mapper
	scrollTop     float64
	tool          interaction.Tool
	selected      selection.Set
	preview       *edit.Delta
	marquee       *marqueeDrag
	clickAdditive bool

	width  int
	height int

	keys     keyMap
	toolKeys map[string]interaction.Tool
	help     help.Model
	status   string
	dirty    bool
	quitting bool
	err      error
}

// New builds the editor model around a loaded project.
func New(deps Deps, opts Opts) Model {
	cfg := deps.Config

	toolKeys := make(map[string]interaction.Tool, len(cfg.Keybindings))
	for k, v := range cfg.Keybindings {
		toolKeys[k] = interaction.Tool(v)
	}

	engine := edit.New(cfg.EditPolicy())
	m := Model{
		cfg:      cfg,
		store:    deps.Store,
		reload:   deps.Reload,
		engine:   engine,
		machine:  interaction.NewMachine(engine, cfg.InteractionSettings()),
		undo:     history.New(history.DefaultLimit),
		mapper:   timecode.New(cfg.Zoom.Default, 0),
		tool:     interaction.ToolSelect,
		selected: selection.Clear(),
		keys:     newKeyMap(),
		toolKeys: toolKeys,
		help:     help.New(),
	}
	if len(opts.Warnings) > 0 {
		m.status = opts.Warnings[0]
	}

	p, err := deps.Store.Load()
	if err != nil {
		m.err = err
		return m
	}
	m.project = p
	m.selected = selection.NewSet(p.Selected...)
	return m
}

// Err returns the load error, if any; the command layer surfaces it
// instead of starting the program.
func (m Model) Err() error {
	return m.err
}

// Dirty reports unsaved changes.
func (m Model) Dirty() bool {
	return m.dirty
}

func (m Model) Init() tea.Cmd {
	return watchReload(m.reload)
}

func watchReload(ch <-chan jsonfile.ReloadEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{ev: ev}
	}
}

// shots returns the draw model: committed shots with the drag preview
// applied on top.
func (m Model) shots() []timeline.Shot {
	shots := m.project.Sequence.Shots
	if m.preview != nil {
		shots = m.preview.Apply(shots)
	}
	return shots
}

// viewportHeight is the pixel height of the track area.
func (m Model) viewportHeight() float64 {
	h := m.height - rulerRows - footerRows
	if h < 0 {
		h = 0
	}
	return float64(h)
}

// computeLayout lays out the current draw model. The editor maps one
// terminal cell to one layout pixel, with track heights scaled down to
// cell counts.
func (m Model) computeLayout() layout.Layout {
	seq := &timeline.Sequence{
		Name:    m.project.Sequence.Name,
		FPS:     m.project.Sequence.FPS,
		Shots:   m.shots(),
		Markers: m.project.Sequence.Markers,
		Regions: m.project.Sequence.Regions,
	}
	for _, t := range m.project.Sequence.Tracks {
		t.Height = cellHeight(t.Type)
		seq.Tracks = append(seq.Tracks, t)
	}
	vp := layout.Viewport{
		Mapper:    m.mapper,
		Width:     float64(m.width),
		Height:    m.viewportHeight(),
		ScrollTop: m.scrollTop,
	}
	cfg := m.cfg.LayoutSettings()
	cfg.LayerSlotHeight = 1
	return layout.Compute(seq, vp, cfg)
}

// cellHeight scales a track type to terminal rows.
func cellHeight(t timeline.LayerType) int {
	switch t {
	case timeline.LayerMedia:
		return 3
	case timeline.LayerAudio:
		return 2
	default:
		return 1
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case reloadMsg:
		return m.updateReload()
	}
	return m, nil
}

func (m Model) updateReload() (tea.Model, tea.Cmd) {
	if m.machine.Dragging() {
		m.machine.Cancel()
		m.preview = nil
	}
	p, err := m.store.Load()
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		logger := logging.Component("tui")
		logger.Error().Err(err).Msg("project reload failed")
		return m, watchReload(m.reload)
	}
	m.project = p
	m.selected = selection.Invalidate(m.selected, shotIDs(p.Sequence.Shots))
	m.undo.Clear()
	m.dirty = false
	m.status = "reloaded from disk"
	return m, watchReload(m.reload)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Escape):
		if m.machine.Dragging() {
			m.machine.Cancel()
			m.preview = nil
			m.status = "gesture cancelled"
		} else if m.marquee != nil {
			m.marquee = nil
		} else {
			m.selected = selection.Clear()
			m.status = ""
		}
		return m, nil

	case key.Matches(msg, keys.SelectAll):
		m.selected = selection.SelectAll(shotIDs(m.project.Sequence.Shots))
		return m, nil

	case key.Matches(msg, keys.Save):
		return m.save()

	case key.Matches(msg, keys.Undo):
		return m.undoEdit(), nil

	case key.Matches(msg, keys.Redo):
		return m.redoEdit(), nil

	case key.Matches(msg, keys.ZoomIn):
		m.mapper.PixelsPerFrame = timecode.ClampZoom(m.mapper.PixelsPerFrame * 1.25)
		return m, nil

	case key.Matches(msg, keys.ZoomOut):
		m.mapper.PixelsPerFrame = timecode.ClampZoom(m.mapper.PixelsPerFrame / 1.25)
		return m, nil

	case key.Matches(msg, keys.ScrollLeft):
		m.mapper.ScrollX = max(0, m.mapper.ScrollX-10*m.mapper.PixelsPerFrame)
		return m, nil

	case key.Matches(msg, keys.ScrollRight):
		m.mapper.ScrollX += 10 * m.mapper.PixelsPerFrame
		return m, nil

	case key.Matches(msg, keys.ScrollUp):
		m.scrollTop = max(0, m.scrollTop-1)
		return m, nil

	case key.Matches(msg, keys.ScrollDown):
		m.scrollTop++
		return m, nil
	}

	if tool, ok := m.toolKeys[msg.String()]; ok {
		if m.machine.Dragging() {
			// tool switches are deferred until the gesture ends
			return m, nil
		}
		m.tool = tool
		m.status = "tool: " + string(tool)
		return m, nil
	}
	return m, nil
}

func (m Model) undoEdit() Model {
	if m.machine.Dragging() {
		return m
	}
	snap, ok := m.undo.Undo(m.project.Sequence.Shots)
	if !ok {
		m.status = "nothing to undo"
		return m
	}
	m.project.Sequence.Shots = snap.Shots
	m.selected = selection.Invalidate(m.selected, shotIDs(snap.Shots))
	m.dirty = true
	m.status = "undid " + snap.Label
	return m
}

func (m Model) redoEdit() Model {
	if m.machine.Dragging() {
		return m
	}
	snap, ok := m.undo.Redo(m.project.Sequence.Shots)
	if !ok {
		m.status = "nothing to redo"
		return m
	}
	m.project.Sequence.Shots = snap.Shots
	m.selected = selection.Invalidate(m.selected, shotIDs(snap.Shots))
	m.dirty = true
	m.status = "redid " + snap.Label
	return m
}

func (m Model) save() (tea.Model, tea.Cmd) {
	m.project.Selected = m.selected.IDs()
	if err := m.store.Save(m.project); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		logger := logging.Component("tui")
		logger.Error().Err(err).Msg("project save failed")
		return m, nil
	}
	m.dirty = false
	m.status = "saved " + m.store.Path()
	return m, nil
}

func shotIDs(shots []timeline.Shot) []string {
	ids := make([]string, 0, len(shots))
	for _, sh := range shots {
		ids = append(ids, sh.ID)
	}
	return ids
}
