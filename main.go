package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nandakim/bgm/internal/config"
	"github.com/nandakim/bgm/internal/errmsg"
	"github.com/nandakim/bgm/internal/keymap"
	"github.com/nandakim/bgm/internal/loader"
	"github.com/nandakim/bgm/internal/mpris"
	"github.com/nandakim/bgm/internal/notify"
	"github.com/nandakim/bgm/internal/playback"
	"github.com/nandakim/bgm/internal/player"
	"github.com/nandakim/bgm/internal/preload"
	"github.com/nandakim/bgm/internal/state"
	"github.com/nandakim/bgm/internal/store"
	"github.com/nandakim/bgm/internal/ui"
)

type (
	tickMsg      time.Time
	docMsg       *loader.Document
	trackMsg     playback.TrackChange
	blockedMsg   playback.BlockedChange
	errorMsg     playback.ErrorEvent
	subClosedMsg struct{}
)

type model struct {
	service  playback.Service
	stateMgr *state.Manager
	ldr      *loader.Loader
	watcher  *loader.Watcher
	sub      *playback.Subscription
	notifier notify.Notifier
	resolver *keymap.Resolver
	device   loader.Device
	position string // overlay placement from the document, fixed at mount
	autoplay bool
	log      *zap.Logger

	width    int
	height   int
	message  string
	notifyID uint32
}

func initialModel(cfg *config.Config, log *zap.Logger) (model, error) {
	ldr := loader.New(loader.WithLogger(log))

	doc, err := ldr.Load(cfg.PlaylistSource)
	if err != nil {
		return model{}, fmt.Errorf("%s", errmsg.Format(errmsg.OpPlaylistLoad, err))
	}

	device := loader.DeviceWeb
	if cfg.GetDevice() == "mobile" {
		device = loader.DeviceMobile
	}

	tracks, err := ldr.Tracks(doc, device)
	if err != nil {
		// ErrDisabled propagates up so main can exit quietly.
		return model{}, err
	}

	stateMgr, err := state.Open()
	if err != nil {
		return model{}, fmt.Errorf("%s", errmsg.Format(errmsg.OpSettingsLoad, err))
	}

	adapter := player.New()
	pre := preload.New(preload.WithLogger(log))
	suppress, delay := cfg.GetErrorSkip()

	service := playback.New(adapter,
		playback.WithLogger(log),
		playback.WithPreloader(pre),
		playback.WithSkipDebounce(suppress, delay),
	)
	service.ReplaceTracks(tracks)

	// Document defaults first, then whatever the user saved locally.
	service.SetMode(store.ParseMode(doc.Config.PlaybackMode))
	if doc.Config.DefaultVolume > 0 {
		service.SetVolume(doc.Config.DefaultVolume)
	}
	if settings, serr := stateMgr.GetSettings(); serr == nil && settings != nil {
		service.SetVolume(settings.Volume)
		service.SetMuted(settings.Muted)
		service.SetMode(settings.Mode)
	}

	notifier, _ := notify.New()

	m := model{
		service:  service,
		stateMgr: stateMgr,
		ldr:      ldr,
		sub:      service.Subscribe(),
		notifier: notifier,
		resolver: keymap.NewResolver(),
		device:   device,
		position: doc.Config.Position,
		autoplay: doc.Config.Autoplay,
		log:      log,
	}

	// Watching only makes sense for a local playlist file.
	if _, statErr := os.Stat(cfg.PlaylistSource); statErr == nil {
		if w, werr := ldr.Watch(cfg.PlaylistSource); werr == nil {
			m.watcher = w
		} else {
			log.Warn("playlist watch unavailable", zap.Error(werr))
		}
	}

	// Autoplay without a gesture; a blocked result leaves the player
	// paused until the first key press.
	if m.autoplay {
		if err := service.TryAutoplay(); err != nil {
			log.Debug("autoplay attempt", zap.Error(err))
		}
	}

	return m, nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.waitTrack(), m.waitBlocked(), m.waitError()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitDoc())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) waitDoc() tea.Cmd {
	return func() tea.Msg {
		doc, ok := <-m.watcher.Documents()
		if !ok {
			return subClosedMsg{}
		}
		return docMsg(doc)
	}
}

func (m model) waitTrack() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.sub.TrackChanged:
			return trackMsg(e)
		case <-m.sub.Done:
			return subClosedMsg{}
		}
	}
}

func (m model) waitBlocked() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.sub.BlockedChanged:
			return blockedMsg(e)
		case <-m.sub.Done:
			return subClosedMsg{}
		}
	}
}

func (m model) waitError() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.sub.Error:
			return errorMsg(e)
		case <-m.sub.Done:
			return subClosedMsg{}
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, tickCmd()

	case trackMsg:
		if msg.Current != nil {
			id, err := m.notifier.Notify(notify.NowPlaying(msg.Current, m.notifyID))
			if err == nil {
				m.notifyID = id
			}
		}
		m.message = ""
		return m, m.waitTrack()

	case blockedMsg:
		if msg.Blocked {
			m.message = "Press any key to start playback"
		} else {
			m.message = ""
		}
		return m, m.waitBlocked()

	case errorMsg:
		title := ""
		if t := m.service.Snapshot().CurrentTrack(); t != nil {
			title = t.Title
		}
		m.message = errmsg.TrackUnavailable(title)
		return m, m.waitError()

	case docMsg:
		tracks, err := m.ldr.Tracks((*loader.Document)(msg), m.device)
		if err != nil {
			// The playlist turned itself off; stop and quit.
			m.log.Info("playlist disabled on reload")
			return m, tea.Quit
		}
		m.service.ReplaceTracks(tracks)
		if m.autoplay {
			if err := m.service.TryAutoplay(); err != nil {
				m.log.Debug("autoplay after reload", zap.Error(err))
			}
		}
		return m, m.waitDoc()

	case subClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.service.Snapshot()

	switch m.resolver.Resolve(msg.String(), false) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionPlayPause:
		if err := m.service.Toggle(); err != nil {
			m.log.Debug("toggle", zap.Error(err))
		}
	case keymap.ActionNextTrack:
		if err := m.service.Next(); err != nil {
			m.log.Debug("next", zap.Error(err))
		}
	case keymap.ActionPrevTrack:
		if err := m.service.Previous(); err != nil {
			m.log.Debug("previous", zap.Error(err))
		}
	case keymap.ActionVolumeUp:
		m.service.SetVolume(s.Volume + keymap.VolumeStep)
		m.saveSettings()
	case keymap.ActionVolumeDown:
		m.service.SetVolume(s.Volume - keymap.VolumeStep)
		m.saveSettings()
	case keymap.ActionToggleMute:
		m.service.ToggleMute()
		m.saveSettings()
	default:
		// Any other key still counts as a gesture: if playback is
		// blocked, start it.
		if m.service.Blocked() {
			if err := m.service.Play(); err != nil {
				m.log.Debug("play on gesture", zap.Error(err))
			}
		}
	}
	return m, nil
}

func (m model) saveSettings() {
	s := m.service.Snapshot()
	m.stateMgr.SaveSettings(state.Settings{
		Volume: s.Volume,
		Muted:  s.Muted,
		Mode:   s.Mode,
	})
}

func (m model) View() string {
	s := m.service.Snapshot()

	ring := ui.RenderRing(len(s.Tracks), s.Position(), 4)

	bar := ui.RenderBar(ui.BarState{
		Track:    s.CurrentTrack(),
		Status:   m.service.Status(),
		Blocked:  m.service.Blocked(),
		Position: s.CurrentTime,
		Duration: s.Duration,
		Volume:   s.Volume,
		Muted:    s.Muted,
		Mode:     s.Mode,
		Message:  m.message,
	}, m.width)

	out := ring
	if bar != "" {
		out += "\n" + bar
	} else if m.message != "" {
		out += "\n " + m.message
	}
	if m.width > 0 && m.height > 0 {
		h, v := placement(m.position)
		out = lipgloss.Place(m.width, m.height, h, v, out)
	}
	return out
}

// placement maps the document's overlay position ("bottom-right" and
// friends) to terminal alignment. Unknown values pin to the bottom
// right, matching the widget's default corner.
func placement(pos string) (lipgloss.Position, lipgloss.Position) {
	h, v := lipgloss.Right, lipgloss.Bottom
	if strings.Contains(pos, "top") {
		v = lipgloss.Top
	}
	if strings.Contains(pos, "left") {
		h = lipgloss.Left
	}
	if strings.Contains(pos, "center") {
		h = lipgloss.Center
	}
	return h, v
}

func (m model) shutdown() {
	if m.watcher != nil {
		m.watcher.Close()
	}
	m.service.Close()
	m.stateMgr.Close()
}

func newLogger(cfg *config.Config) *zap.Logger {
	if cfg.LogFile == "" {
		return zap.NewNop()
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.LogFile}
	zc.ErrorOutputPaths = []string{cfg.LogFile}
	log, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}

	log := newLogger(cfg)
	defer log.Sync() //nolint:errcheck

	ui.ApplyAccent(cfg.ThemeAccent)

	m, err := initialModel(cfg, log)
	if err != nil {
		if errors.Is(err, loader.ErrDisabled) {
			// Disabled playlist: render nothing, exit clean.
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer m.shutdown()

	mprisAdapter, err := mpris.New(m.service)
	if err != nil {
		log.Warn("mpris unavailable", zap.Error(err))
	} else {
		defer mprisAdapter.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}
