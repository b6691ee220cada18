package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"worship/pkg/engine/audio"
	"worship/pkg/engine/audio/mixer"
	"worship/pkg/engine/input"
	"worship/pkg/engine/logger"
	"worship/pkg/engine/loop"
	"worship/pkg/engine/resource"
	"worship/pkg/engine/terminal"
	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/devtools"
	"worship/pkg/game/gameplay"
	"worship/pkg/game/generator"
	"worship/pkg/game/messages"
	"worship/pkg/game/renderer"
	ebitenrenderer "worship/pkg/game/renderer/ebiten"
	"worship/pkg/game/renderer/tui"
	"worship/pkg/game/state"
)

// Arena size used when the configured level cannot be found.
const (
	fallbackWidth  = 32
	fallbackHeight = 24
)

func main() {
	cfg := config.FromEnv()

	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "directory holding levels and sounds")
	flag.StringVar(&cfg.Level, "level", cfg.Level, "level file, relative to the data directory")
	difficulty := flag.String("difficulty", cfg.Difficulty.String(), "easy, normal or hard")
	mode := flag.String("renderer", string(cfg.Renderer), "ebiten, tui or headless")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels")
	flag.StringVar(&cfg.DebugAddr, "debug-addr", cfg.DebugAddr, "listen address of the debug server, empty to disable")
	flag.StringVar(&cfg.Locale, "locale", cfg.Locale, "message language")
	flag.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play sounds")
	flag.IntVar(&cfg.HeadlessTicks, "ticks", cfg.HeadlessTicks, "fixed updates to run in headless mode")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg.Difficulty = config.ParseDifficulty(*difficulty)
	if r, ok := config.ParseRenderer(*mode); ok {
		cfg.Renderer = r
	}

	logger.Init()
	if cfg.Renderer == config.RendererTUI {
		// The terminal belongs to the renderer.
		f, err := os.OpenFile("worship.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), io.Discard)
		} else {
			defer f.Close()
			logger.Configure(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), f)
		}
	}

	session := uuid.NewString()
	log := logger.For("main").WithField("session", session)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, session, *seed, log); err != nil {
		log.WithError(err).Error("Worship stopped")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, session string, seed int64, log *logrus.Entry) error {
	log.WithFields(logrus.Fields{
		"renderer":   cfg.Renderer,
		"difficulty": cfg.Difficulty,
		"seed":       seed,
	}).Info("Starting Worship")

	res := resource.Dir(cfg.DataDir)

	level, err := loadLevel(res, cfg.Level, seed, log)
	if err != nil {
		return err
	}

	catalog := messages.Load(cfg.LocaleDir, cfg.Locale)

	g, err := gameplay.Load(level, cfg.Difficulty, catalog, seed)
	if err != nil {
		return err
	}
	g.SessionID = session

	if cfg.Audio && cfg.Renderer != config.RendererHeadless {
		m := mixer.New(func(clip audio.Clip) ([]byte, error) {
			return res.Bytes("sounds/" + string(clip) + ".wav")
		})
		if err := m.Initialize(); err != nil {
			log.WithError(err).Warn("Audio disabled")
		} else {
			defer m.Close()
			g.World.Audio = m
		}
	}

	held := input.NewHeld()
	stack := loop.NewStack()
	play := gameplay.New(g, held, stack)

	if cfg.DebugAddr != "" {
		play.Publisher = devtools.NewPublisher()
		srv, err := devtools.Listen(cfg.DebugAddr, play.Publisher)
		if err != nil {
			return err
		}
		go func() {
			if err := srv.Serve(ctx); err != nil {
				log.WithError(err).Warn("Debug server stopped")
			}
		}()
	}

	stack.Push(play)
	l := loop.New(stack)

	switch cfg.Renderer {
	case config.RendererHeadless:
		err = runHeadless(ctx, l, cfg.HeadlessTicks)
	case config.RendererTUI:
		err = runTUI(ctx, l, held)
	default:
		r := ebitenrenderer.New(cfg.Width, cfg.Height)
		renderer.SetRenderer(r)
		err = r.Run(l, held, "Worship")
	}
	if err != nil {
		return err
	}

	logSummary(log, g, l)
	return nil
}

// loadLevel reads the named level, generating an arena when the file is absent.
func loadLevel(res *resource.Cache, name string, seed int64, log *logrus.Entry) (*world.Level, error) {
	level, err := resource.Load(res, name, func(b []byte) (*world.Level, error) {
		return world.DecodeLevel(bytes.NewReader(b))
	})
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, resource.ErrNotFound) {
		return nil, err
	}

	log.WithField("level", name).Warn("Level not found, generating an arena")
	return generator.GenerateArena(fallbackWidth, fallbackHeight, seed)
}

func runHeadless(ctx context.Context, l *loop.Loop, ticks int) error {
	renderer.SetRenderer(renderer.Null{})
	for i := 0; i < ticks && !l.Stack().Empty(); i++ {
		if ctx.Err() != nil {
			return nil
		}
		l.Advance(loop.Step)
	}
	return nil
}

func runTUI(ctx context.Context, l *loop.Loop, held *input.Held) error {
	renderer.SetRenderer(tui.New(os.Stdout))

	reader := input.NewTerminalReader()
	events, err := reader.Start(ctx)
	if err != nil {
		return err
	}
	defer reader.Restore()

	terminal.Clear(os.Stdout)
	terminal.HideCursor(os.Stdout)
	defer terminal.ShowCursor(os.Stdout)

	return tui.NewDriver(l, held).Run(ctx, events)
}

func logSummary(log *logrus.Entry, g *state.Game, l *loop.Loop) {
	fields := logrus.Fields{
		"ticks":    l.Ticks(),
		"entities": g.World.Len(),
		"lights":   g.World.Lights().Len(),
	}
	if p, ok := g.Player(); ok {
		fields["health"] = p.Health
		fields["armor"] = p.Armor
	}
	log.WithFields(fields).Info("Session over")
}
