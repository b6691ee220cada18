// Package ebiten provides an Ebiten-based top-down renderer for Worship. It
// also drives the game loop from Ebiten's update callback.
package ebiten

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/gofont/gomono"

	"worship/pkg/engine/input"
	"worship/pkg/engine/logger"
	"worship/pkg/engine/loop"
	"worship/pkg/game/renderer"
)

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	// Window dimensions
	windowWidth  int
	windowHeight int

	// Tile size in pixels (adjustable with +/-)
	tileSize int

	// Latest frame handed over by the gameplay state
	frame         *renderer.Frame
	overlays      []string
	snapshotMutex sync.RWMutex

	loop *loop.Loop
	held *input.Held
	last time.Time

	fontSource  *text.GoTextFaceSource
	hudFace     *text.GoTextFace
	overlayFace *text.GoTextFace

	windowOpenedLogged bool
	log                *logrus.Entry
}

// New creates a renderer for a window of the given size.
func New(width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  width,
		windowHeight: height,
		tileSize:     defaultTileSize,
		log:          logger.For("ebiten"),
	}
}

// RenderFrame stores the frame drawn by the next Draw call.
func (e *EbitenRenderer) RenderFrame(f *renderer.Frame) {
	e.snapshotMutex.Lock()
	e.frame = f
	e.overlays = e.overlays[:0]
	e.snapshotMutex.Unlock()
}

// RenderOverlay queues text drawn over the current frame.
func (e *EbitenRenderer) RenderOverlay(s string) {
	e.snapshotMutex.Lock()
	e.overlays = append(e.overlays, s)
	e.snapshotMutex.Unlock()
}

// Run opens the window and advances l once per displayed frame until the
// state stack is empty or the window is closed.
func (e *EbitenRenderer) Run(l *loop.Loop, held *input.Held, title string) error {
	e.loop = l
	e.held = held

	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	e.fontSource = src
	e.hudFace = &text.GoTextFace{Source: src, Size: hudFontSize}
	e.overlayFace = &text.GoTextFace{Source: src, Size: overlayFontSize}

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	return ebiten.RunGame(e)
}

// Update handles input and advances the simulation (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.log.WithFields(logrus.Fields{"width": w, "height": h}).Info("Main window opened")
	}

	now := time.Now()
	var delta time.Duration
	if !e.last.IsZero() {
		delta = now.Sub(e.last)
	}
	e.last = now

	pollInput(e.held, isCodePressed)
	e.handleZoom()
	e.loop.Advance(delta)

	if e.loop.Stack().Empty() {
		return ebiten.Termination
	}
	return nil
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth = outsideWidth
	e.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}
