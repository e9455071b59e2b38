// Package app wires the annotation core to its collaborators: the
// display surface, the capture pipeline, the session saver, and the
// control socket. Everything that touches State runs on the single
// event-loop goroutine driven by Run.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/devmobasa/wayscriber/internal/capture"
	"github.com/devmobasa/wayscriber/internal/config"
	"github.com/devmobasa/wayscriber/internal/geometry"
	"github.com/devmobasa/wayscriber/internal/input"
	"github.com/devmobasa/wayscriber/internal/ipc"
	"github.com/devmobasa/wayscriber/internal/logger"
	"github.com/devmobasa/wayscriber/internal/render"
	"github.com/devmobasa/wayscriber/internal/session"
)

// Surface is the display backend contract: the app owns the pixel
// buffer during a render pass and releases it by committing.
type Surface interface {
	// Commit publishes the buffer's damaged regions.
	Commit(buf *image.RGBA, damage []image.Rectangle) error
	// HideForCapture shrinks the overlay away so it stays out of
	// screenshots; RestoreAfterCapture brings it back.
	HideForCapture()
	RestoreAfterCapture()
}

// TickInterval is the cooperative tick period.
const TickInterval = 16 * time.Millisecond

// App is the running instance.
type App struct {
	State    *input.State
	Renderer *render.Renderer

	surface  Surface
	cfg      *config.Config
	pipeline *capture.Pipeline
	saver    *session.Saver
	mailbox  *ipc.Mailbox
	server   *ipc.SocketServer

	events  chan input.Event
	reloads chan *config.Config
}

// New assembles an app from its collaborators. The config decides which
// optional pieces (session, control socket) are active.
func New(cfg *config.Config, surface Surface) (*App, error) {
	a := &App{
		State:    input.NewState(),
		Renderer: render.New(),
		surface:  surface,
		cfg:      cfg,
		events:   make(chan input.Event, 256),
		reloads:  make(chan *config.Config, 1),
	}

	a.State.Tool = input.Tool(cfg.Drawing.DefaultTool)
	a.State.CurrentColor = cfg.DefaultPenColor()
	a.State.Thickness = cfg.Drawing.DefaultThickness
	a.State.EraserSize = cfg.Drawing.EraserSize
	a.State.MarkerOpacity = cfg.Drawing.MarkerOpacity
	a.State.FontSize = cfg.Drawing.FontSize
	a.State.Boards.ClampHistoryDepth(cfg.Drawing.HistoryLimit)
	if cfg.Board.Default != "" {
		a.State.SwitchBoard(cfg.Board.Default)
	}

	a.pipeline = capture.NewPipeline(
		&capture.PortalBackend{IncludeCursor: cfg.Capture.IncludeCursor},
		surface,
		capture.Options{
			Timeout:   cfg.CaptureTimeout(),
			Directory: cfg.CaptureDirectory(),
			Template:  cfg.Capture.FilenameTemplate,
		},
	)

	if cfg.Session.Enabled {
		store := session.NewStore(cfg.SessionPath())
		store.MaxFileSize = cfg.Session.MaxFileSizeBytes
		store.Backup = cfg.Session.Backup
		a.saver = session.NewSaver(store, cfg.SaveDebounce())

		snap, err := store.Load()
		switch {
		case errors.Is(err, session.ErrSnapshotCorrupt):
			a.State.PushToast(input.ToastWarning, "Previous session was corrupt; backed up and started clean")
		case errors.Is(err, session.ErrSnapshotTooLarge):
			a.State.PushToast(input.ToastWarning, "Previous session exceeded the size cap; started clean")
		case err != nil:
			logger.Warnf("session load: %v", err)
		case snap != nil:
			session.Apply(a.State, snap, cfg.Session.MaxShapesPerFrame)
			logger.Info("session restored", "boards", len(snap.Boards))
		}
	}

	if cfg.IPC.Enabled {
		a.mailbox = ipc.NewMailbox(32)
		server, err := ipc.NewSocketServer(cfg.IPC.SocketPath, a.mailbox)
		if err != nil {
			return nil, fmt.Errorf("control socket: %w", err)
		}
		a.server = server
	}
	return a, nil
}

// Enqueue hands a normalized input event to the loop. Safe to call from
// backend goroutines.
func (a *App) Enqueue(ev input.Event) {
	select {
	case a.events <- ev:
	default:
		logger.Warn("input event queue full, dropping event")
	}
}

// Run drives the cooperative tick until the context ends or the state
// requests exit.
func (a *App) Run(ctx context.Context) error {
	if a.server != nil {
		if err := a.server.Start(); err != nil {
			return err
		}
		defer a.server.Stop()
	}

	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return ctx.Err()
		case ev := <-a.events:
			a.State.HandleEvent(ev)
		case <-ticker.C:
			a.Tick()
			if a.State.ExitRequested {
				a.shutdown()
				return nil
			}
		}
	}
}

// Tick runs one cooperative pass: drain pending input, run due delayed
// history steps, poll capture and session completions, then render once
// if anything is dirty.
func (a *App) Tick() {
	for {
		select {
		case ev := <-a.events:
			a.State.HandleEvent(ev)
			continue
		default:
		}
		break
	}

	select {
	case c := <-a.reloads:
		a.applyConfig(c)
	default:
	}

	if a.mailbox != nil {
		a.mailbox.Drain(a.handleCommand)
	}

	a.State.TickDelayedHistory()
	a.State.PruneToasts()
	if a.State.TakeFreezeRequest() {
		a.RequestCapture(capture.FullScreen, capture.ToFrozen, geometry.Rect{})
	}
	a.pollCapture()
	a.pollSession()

	if a.State.NeedsRedraw {
		a.renderPass()
	}
}

func (a *App) renderPass() {
	w, h := a.State.ScreenSize()
	if w <= 0 || h <= 0 {
		return
	}
	a.Renderer.Resize(w, h, a.State.BufferScale())
	damage := a.Renderer.Render(a.State)
	a.State.NeedsRedraw = false
	if len(damage) == 0 {
		return
	}
	if err := a.surface.Commit(a.Renderer.Buffer(), damage); err != nil {
		// Leave the redraw flag set so the next tick retries.
		logger.Errorf("commit failed: %v", err)
		a.State.NeedsRedraw = true
		a.State.Dirty.MarkFull()
	}
}

// ReloadConfig hands an updated config to the loop. Safe to call from
// the config watcher's goroutine; a pending reload is replaced.
func (a *App) ReloadConfig(c *config.Config) {
	for {
		select {
		case a.reloads <- c:
			return
		case <-a.reloads:
		}
	}
}

// applyConfig updates the live-tunable settings. Tool defaults only
// affect fresh starts, so they are left alone here.
func (a *App) applyConfig(c *config.Config) {
	a.cfg = c
	a.State.Boards.ClampHistoryDepth(c.Drawing.HistoryLimit)
	a.pipeline.SetOptions(capture.Options{
		Timeout:   c.CaptureTimeout(),
		Directory: c.CaptureDirectory(),
		Template:  c.Capture.FilenameTemplate,
	})
	if a.saver != nil {
		a.saver.SetDebounce(c.SaveDebounce())
	}
	a.State.PushToast(input.ToastInfo, "Configuration reloaded")
	logger.Info("configuration reloaded")
}

func (a *App) shutdown() {
	if a.saver != nil && a.cfg.Session.Enabled {
		snap := session.Capture(a.State, a.cfg.Session.HistoryRetention)
		if err := a.saver.Flush(snap); err != nil {
			logger.Warnf("final session save: %v", err)
		}
	}
}

// RequestCapture starts a screenshot. An in-progress capture raises an
// informational toast instead of a second request.
func (a *App) RequestCapture(typ capture.Type, dest capture.Destination, rect geometry.Rect) {
	req := capture.Request{Type: typ, Destination: dest, Rect: rect}
	if err := a.pipeline.Start(req); err != nil {
		switch {
		case errors.Is(err, capture.ErrCaptureInProgress):
			a.State.PushToast(input.ToastInfo, "Capture already in progress")
		default:
			a.State.PushToast(input.ToastError, "Capture failed: "+err.Error())
		}
	}
}

func (a *App) pollCapture() {
	out := a.pipeline.Poll()
	if out == nil {
		return
	}
	if out.Err != nil {
		a.State.PushToast(input.ToastError, "Capture failed: "+out.Err.Error())
		a.State.Dirty.MarkFull()
		a.State.NeedsRedraw = true
		return
	}
	switch {
	case out.Request.Destination == capture.ToFrozen:
		a.installFrozen(out.Image)
		a.State.PushToast(input.ToastInfo, "Screen frozen")
	case out.Path != "":
		a.State.PushToast(input.ToastInfo, "Saved "+out.Path)
	default:
		a.State.PushToast(input.ToastInfo, "Copied to clipboard")
	}
	a.State.Dirty.MarkFull()
	a.State.NeedsRedraw = true
}

func (a *App) installFrozen(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	a.State.SetCapturedImage(&input.CapturedImage{
		Pix:    img.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
		Stride: img.Stride,
	})
}

func (a *App) pollSession() {
	if a.saver == nil {
		return
	}
	if a.State.SessionDirty {
		a.saver.MarkDirty(time.Now())
		a.State.SessionDirty = false
	}
	if a.saver.Due(time.Now()) {
		snap := session.Capture(a.State, a.cfg.Session.HistoryRetention)
		if err := a.saver.Save(snap); err != nil {
			if errors.Is(err, session.ErrSnapshotTooLarge) {
				a.State.PushToast(input.ToastWarning, "Session too large to save")
			} else {
				logger.Warnf("session save: %v", err)
			}
		}
	}
	a.saver.Poll()
}

// handleCommand maps a control-socket command onto the state. It runs on
// the event-loop goroutine via the mailbox drain.
func (a *App) handleCommand(cmd ipc.Command) ipc.Response {
	switch cmd.Name {
	case ipc.CmdUndo:
		return a.applyAction(input.Action{Kind: input.ActionUndo, Steps: cmd.Steps})
	case ipc.CmdRedo:
		return a.applyAction(input.Action{Kind: input.ActionRedo, Steps: cmd.Steps})
	case ipc.CmdClear:
		return a.applyAction(input.Action{Kind: input.ActionClearPage})
	case ipc.CmdTool:
		return a.applyAction(input.Action{Kind: input.ActionSelectTool, Tool: input.Tool(cmd.Tool)})
	case ipc.CmdBoard:
		return a.applyAction(input.Action{Kind: input.ActionSwitchBoard, Board: cmd.Board})
	case ipc.CmdToggleOverlay:
		return a.applyAction(input.Action{Kind: input.ActionToggleOverlay})
	case ipc.CmdCapture:
		typ := capture.FullScreen
		if strings.EqualFold(cmd.CaptureType, "selection") {
			typ = capture.Selection
		}
		dest := capture.ToFile
		switch strings.ToLower(cmd.Destination) {
		case "clipboard":
			dest = capture.ToClipboard
		case "both":
			dest = capture.ToBoth
		}
		if typ == capture.Selection {
			sel, ok := a.State.SelectionBounds()
			if !ok {
				return ipc.Failf("selection capture requires a selection")
			}
			a.RequestCapture(typ, dest, sel)
		} else {
			a.RequestCapture(typ, dest, geometry.Rect{})
		}
		return ipc.Ok()
	case ipc.CmdStatus:
		return ipc.Response{OK: true, Status: a.status()}
	default:
		return ipc.Failf("unknown command %q", cmd.Name)
	}
}

func (a *App) applyAction(act input.Action) ipc.Response {
	if err := a.State.Apply(act); err != nil {
		return ipc.Fail(err)
	}
	return ipc.Ok()
}

func (a *App) status() *ipc.Status {
	frame := a.State.ActiveFrame()
	pages := a.State.Boards.ActivePages()
	return &ipc.Status{
		Board:      a.State.Boards.ActiveID(),
		Page:       pages.ActiveIndex() + 1,
		PageCount:  pages.PageCount(),
		Tool:       string(a.State.ActiveTool()),
		Thickness:  a.State.Thickness,
		ShapeCount: frame.Len(),
		UndoDepth:  frame.UndoDepth(),
		RedoDepth:  frame.RedoDepth(),
		Visible:    !a.State.Clickthrough,
	}
}
