// Package app hosts the interactive fort map as a Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/TetuPalomydes/dam-map/pkg/dataset"
	"github.com/TetuPalomydes/dam-map/pkg/gesture"
	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/marker"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/render"
	"github.com/TetuPalomydes/dam-map/pkg/render/term"
	"github.com/TetuPalomydes/dam-map/pkg/status"
	"github.com/TetuPalomydes/dam-map/pkg/store"
	"github.com/TetuPalomydes/dam-map/pkg/tui/components/footer"
	"github.com/TetuPalomydes/dam-map/pkg/tui/theme"
	"github.com/TetuPalomydes/dam-map/pkg/viewport"
)

const (
	// panStepX and panStepY are the keyboard pan distances in pixels.
	panStepX   = 8
	panStepY   = 4
	allRegions = -1
)

// Options configures the map program.
type Options struct {
	Context context.Context
	Dataset *dataset.Dataset
	// Loader fetches the status snapshot at start and on reload.
	Loader status.Loader
	// WatchPath reloads status when this file changes. Empty disables it.
	WatchPath string
	Kind      record.Kind
	// Pinned orders the active records with the pinned names first.
	Pinned       bool
	TapThreshold float64
	// MinHitRadius is the smallest pick radius in cells.
	MinHitRadius float64
	Resolved     []string
	Opener       Opener
	Theme        *theme.Theme
	Log          *slog.Logger
}

// Model is the map program state. Only Update mutates it.
type Model struct {
	ctx      context.Context
	log      *slog.Logger
	data     *dataset.Dataset
	loader   status.Loader
	opener   Opener
	vp       *viewport.Controller
	gesture  *gesture.Machine
	index    marker.Index
	renderer *render.Renderer

	kind    record.Kind
	pinned  bool
	regions []string
	region  int
	visible []record.Record
	hover   *record.Record
	status  status.Map

	width   int
	height  int
	pressed tea.MouseButton
	// last pointer position over the map, in pixels
	pointerX, pointerY float64
	hasPointer         bool

	keys   keyMap
	help   help.Model
	footer footer.Model

	watchPath   string
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New builds the model. A nil dataset shows an empty grid.
func New(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = logger.L()
	}
	data := opts.Dataset
	if data == nil {
		data = dataset.New(nil, nil, nil, nil, nil)
	}
	th := theme.Default()
	if opts.Theme != nil {
		th = *opts.Theme
	}
	opener := opts.Opener
	if opener == nil {
		opener = DefaultOpener()
	}

	m := &Model{
		ctx:       ctx,
		log:       log,
		data:      data,
		loader:    opts.Loader,
		opener:    opener,
		vp:        viewport.New(data.Extent()),
		index:     marker.Index{MinRadiusPx: opts.MinHitRadius},
		renderer:  &render.Renderer{Palette: th.Map, Overlay: status.NewOverlay(opts.Resolved...)},
		regions:   data.RegionNames(),
		region:    allRegions,
		status:    status.Map{},
		keys:      defaultKeys(),
		help:      help.New(),
		footer:    footer.New(th.Footer),
		watchPath: opts.WatchPath,
	}
	var gopts []gesture.Option
	if opts.TapThreshold > 0 {
		gopts = append(gopts, gesture.WithTapThreshold(opts.TapThreshold))
	}
	m.gesture = gesture.New(m.vp, gesture.PickerFunc(m.pick), gopts...)

	m.pinned = opts.Pinned
	m.kind = opts.Kind
	if m.kind == "" {
		m.kind = record.KindB
		if kinds := data.Kinds(); len(kinds) > 0 {
			m.kind = kinds[0]
		}
	}
	m.refreshVisible()
	return m
}

func (m *Model) pick(sx, sy float64) (record.Record, bool) {
	return m.index.HitTest(sx, sy, m.visible, m.vp)
}

type statusLoadedMsg struct {
	status status.Map
	origin status.Origin
}

type activationDoneMsg struct {
	activation gesture.Activation
	method     Method
	err        error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func loadStatusCmd(ctx context.Context, loader status.Loader) tea.Cmd {
	return func() tea.Msg {
		s, origin := loader.LoadWithOrigin(ctx)
		return statusLoadedMsg{status: s, origin: origin}
	}
}

func startWatchCmd(parent context.Context, path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := store.WatchFile(ctx, path)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) activateCmd(act gesture.Activation) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		method, err := opener.Open(act.Target)
		return activationDoneMsg{activation: act, method: method, err: err}
	}
}

// Init loads status and starts watching the status file.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(loadStatusCmd(m.ctx, m.loader), startWatchCmd(m.ctx, m.watchPath))
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.surfaceSize()
		m.vp.Fit(w, h)
		m.rehover()
	case statusLoadedMsg:
		m.status = msg.status
		if m.status == nil {
			m.status = status.Map{}
		}
		m.footer.SetStatus(fmt.Sprintf("status %d (%s)", len(m.status), msg.origin))
		m.log.Debug("tui_status_loaded", "count", len(m.status), "origin", msg.origin.String())
	case activationDoneMsg:
		act := msg.activation
		if msg.err != nil {
			m.footer.SetError("ERR: " + msg.err.Error())
			m.log.Warn("tui_activation_error", "kind", act.Kind.String(), "target", act.Target, "err", msg.err)
			break
		}
		m.footer.SetStatus(fmt.Sprintf("%s %s %s", msg.method, act.Kind, act.Record))
		m.log.Info("tui_activation", "kind", act.Kind.String(), "target", act.Target, "method", string(msg.method))
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("tui_watch_error", "path", m.watchPath, "err", msg.err)
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		switch msg.event.Type {
		case store.EventFileChanged, store.EventWatchError:
			cmds = append(cmds, loadStatusCmd(m.ctx, m.loader))
		case store.EventFileRemoved:
			m.log.Debug("tui_status_file_removed", "path", msg.event.Path)
		}
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if m.ctx.Err() == nil {
			cmds = append(cmds, startWatchCmd(m.ctx, m.watchPath))
		}
	case tea.MouseClickMsg:
		cmds = append(cmds, m.handleMouse(msg.Mouse(), mousePress))
	case tea.MouseMotionMsg:
		cmds = append(cmds, m.handleMouse(msg.Mouse(), mouseMotion))
	case tea.MouseReleaseMsg:
		cmds = append(cmds, m.handleMouse(msg.Mouse(), mouseRelease))
	case tea.MouseWheelMsg:
		cmds = append(cmds, m.handleMouse(msg.Mouse(), mouseWheel))
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPress(msg))
	}

	return m, tea.Batch(cmds...)
}

type mouseAction int

const (
	mousePress mouseAction = iota
	mouseMotion
	mouseRelease
	mouseWheel
)

// toPixel maps a cell to the centre of its two-pixel column.
func toPixel(x, y int) (float64, float64) {
	return float64(x) + 0.5, float64(y)*2 + 1
}

func (m *Model) handleMouse(mouse tea.Mouse, action mouseAction) tea.Cmd {
	px, py := toPixel(mouse.X, mouse.Y)
	inMap := mouse.Y < m.mapRows()
	m.pointerX, m.pointerY, m.hasPointer = px, py, inMap

	var ev gesture.Event
	switch action {
	case mousePress:
		if !inMap {
			return nil
		}
		switch mouse.Button {
		case tea.MouseLeft:
			ev = gesture.PointerDown{X: px, Y: py, Button: gesture.ButtonPrimary}
		case tea.MouseRight:
			ev = gesture.PointerDown{X: px, Y: py, Button: gesture.ButtonSecondary}
		default:
			return nil
		}
		m.pressed = mouse.Button
	case mouseMotion:
		ev = gesture.PointerMove{X: px, Y: py}
	case mouseRelease:
		button := mouse.Button
		if button == tea.MouseNone {
			button = m.pressed
		}
		m.pressed = tea.MouseNone
		switch button {
		case tea.MouseLeft:
			ev = gesture.PointerUp{X: px, Y: py, Button: gesture.ButtonPrimary}
		case tea.MouseRight:
			ev = gesture.PointerUp{X: px, Y: py, Button: gesture.ButtonSecondary}
		default:
			return nil
		}
	case mouseWheel:
		if !inMap {
			return nil
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			ev = gesture.Wheel{X: px, Y: py, Delta: 1}
		case tea.MouseWheelDown:
			ev = gesture.Wheel{X: px, Y: py, Delta: -1}
		default:
			return nil
		}
	}
	return m.apply(m.gesture.Handle(ev))
}

func (m *Model) apply(out gesture.Outcome) tea.Cmd {
	if out.HoverTested {
		m.setHover(out.Hover)
	} else if out.ViewChanged {
		m.rehover()
	}
	if out.Activation != nil {
		return m.activateCmd(*out.Activation)
	}
	return nil
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopWatch()
		return tea.Quit
	case key.Matches(msg, m.keys.ZoomIn):
		m.vp.ZoomAbout(nil, viewport.ZoomIn)
		m.rehover()
	case key.Matches(msg, m.keys.ZoomOut):
		m.vp.ZoomAbout(nil, viewport.ZoomOut)
		m.rehover()
	case key.Matches(msg, m.keys.Up):
		m.vp.Pan(0, panStepY)
		m.rehover()
	case key.Matches(msg, m.keys.Down):
		m.vp.Pan(0, -panStepY)
		m.rehover()
	case key.Matches(msg, m.keys.Left):
		m.vp.Pan(panStepX, 0)
		m.rehover()
	case key.Matches(msg, m.keys.Right):
		m.vp.Pan(-panStepX, 0)
		m.rehover()
	case key.Matches(msg, m.keys.Reset):
		m.vp.Reset()
		m.rehover()
	case key.Matches(msg, m.keys.Kind):
		m.kind = m.kind.Other()
		m.selectionChanged()
	case key.Matches(msg, m.keys.Region):
		m.region++
		if m.region >= len(m.regions) {
			m.region = allRegions
		}
		m.selectionChanged()
	case key.Matches(msg, m.keys.Reload):
		return loadStatusCmd(m.ctx, m.loader)
	}
	return nil
}

func (m *Model) selectionChanged() {
	m.gesture.Reset()
	m.setHover(nil)
	m.refreshVisible()
}

func (m *Model) refreshVisible() {
	m.visible = m.data.Select(record.Filter{Kind: m.kind, Region: m.regionName()}, m.pinned)
}

func (m *Model) regionName() string {
	if m.region < 0 || m.region >= len(m.regions) {
		return ""
	}
	return m.regions[m.region]
}

// rehover picks again at the last pointer position after the view moved
// under a still pointer. Drags and pinches leave the hover alone.
func (m *Model) rehover() {
	if m.gesture.State() != gesture.Idle {
		return
	}
	if !m.hasPointer {
		m.setHover(nil)
		return
	}
	if r, ok := m.pick(m.pointerX, m.pointerY); ok {
		m.setHover(&r)
		return
	}
	m.setHover(nil)
}

func (m *Model) setHover(r *record.Record) {
	m.hover = r
	if r == nil {
		m.footer.SetTooltip("")
		return
	}
	m.footer.SetTooltip(m.tooltip(*r))
}

// tooltip is `name (x,y) ★n`, with the status tag appended when known.
func (m *Model) tooltip(r record.Record) string {
	s := r.String()
	if st, ok := m.status.Lookup(r.Name); ok && st != "" {
		s += " [" + st + "]"
	}
	return s
}

func (m *Model) mapRows() int {
	return max(m.height-footer.Height, 1)
}

// surfaceSize is the map area in pixels.
func (m *Model) surfaceSize() (float64, float64) {
	return float64(max(m.width, 1)), float64(m.mapRows() * 2)
}

// View draws the map and the footer.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	canvas := term.New(m.width, m.mapRows())
	w, h := canvas.PixelSize()
	m.renderer.Draw(canvas, m.vp, render.Frame{
		Width:   w,
		Height:  h,
		Records: m.visible,
		Kind:    m.kind,
		Hover:   m.hover,
		Status:  m.status,
	})

	region := "all"
	if name := m.regionName(); name != "" {
		region = name
	}
	m.footer.SetView(fmt.Sprintf("%d%%", m.vp.ZoomPercent()), m.data.Label(m.kind), region)
	m.footer.SetHelp(m.help.ShortHelpView(m.keys.ShortHelp()))

	var b strings.Builder
	b.WriteString(canvas.String())
	b.WriteString("\n")
	b.WriteString(m.footer.View(m.width))
	return b.String()
}

// Run launches the interactive map.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
