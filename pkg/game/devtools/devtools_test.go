package devtools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/entities"
	"worship/pkg/game/messages"
	"worship/pkg/game/state"
)

// newTestGame builds a game from rows of '#' and '.' with a player at @,
// an enemy at E and a health pickup at p.
func newTestGame(t *testing.T, rows ...string) *state.Game {
	t.Helper()
	grid := world.NewGrid(len(rows[0]), len(rows))
	for z, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				grid.SetType(world.Coord{X: x, Y: z}, world.TileWall)
			}
		}
	}
	g := state.NewGame(world.New(grid), config.Normal, messages.English(), 1)
	g.SessionID = "test-session"

	for z, row := range rows {
		for x, ch := range row {
			fx, fz := float32(x)+0.5, float32(z)+0.5
			switch ch {
			case '@':
				g.Env.Player = g.World.Spawn(entities.NewPlayer(g.Env, mgl32.Vec3{fx, 0.5, fz}))
			case 'E':
				g.World.Spawn(entities.NewEnemy(g.Env, entities.LightEnemy, fx, fz))
			case 'p':
				entities.SpawnPickup(g.World, g.Env, entities.HealthPickup, fx, fz)
			}
		}
	}
	return g
}

var testRows = []string{
	"######",
	"#@..E#",
	"#..p.#",
	"######",
}

func TestMapRows(t *testing.T) {
	g := newTestGame(t, testRows...)
	got := MapRows(g.World)
	for i, want := range testRows {
		if got[i] != want {
			t.Errorf("MapRows() row %d = %q, want %q", i, got[i], want)
		}
	}
}

func TestComputeLightStats(t *testing.T) {
	g := newTestGame(t, testRows...)
	if s := ComputeLightStats(g.World.Grid()); s.Tiles != 8 || s.Lit != 0 || s.Max != 0 {
		t.Errorf("ComputeLightStats(dark) = %+v, want 8 dark tiles", s)
	}

	g.World.Grid().Radiate(world.Coord{X: 1, Y: 1}, mgl32.Vec3{1, 1, 1})
	s := ComputeLightStats(g.World.Grid())
	if s.Lit == 0 || s.Max <= s.Min || s.Mean <= 0 {
		t.Errorf("ComputeLightStats(lit) = %+v, want lit tiles with a spread", s)
	}
}

func TestDumpMap(t *testing.T) {
	g := newTestGame(t, testRows...)
	var b strings.Builder
	if err := DumpMap(&b, g.World); err != nil {
		t.Fatalf("DumpMap() error = %v", err)
	}
	out := b.String()
	for _, want := range []string{"--- Legend ---", "#@..E#", "open_tiles: 8", "width: 6"} {
		if !strings.Contains(out, want) {
			t.Errorf("DumpMap() output missing %q", want)
		}
	}
}

func TestDumpMapToFile(t *testing.T) {
	g := newTestGame(t, testRows...)
	path, err := DumpMapToFile(t.TempDir(), g.World)
	if err != nil {
		t.Fatalf("DumpMapToFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(data), "=== MAP DUMP ===") {
		t.Errorf("dump file missing header")
	}
}

func TestLightmapImage(t *testing.T) {
	g := newTestGame(t, testRows...)
	img := LightmapImage(g.World, 4)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Fatalf("LightmapImage bounds = %v, want 24x16", b)
	}
	r, gr, bl, _ := img.At(1, 1).RGBA()
	want := screenshotWall
	if uint8(r>>8) != want.R || uint8(gr>>8) != want.G || uint8(bl>>8) != want.B {
		t.Errorf("wall pixel = (%d, %d, %d), want %v", r>>8, gr>>8, bl>>8, want)
	}
}

func TestSaveScreenshot(t *testing.T) {
	g := newTestGame(t, testRows...)
	dir := t.TempDir()
	path, err := SaveScreenshot(dir, g.World)
	if err != nil {
		t.Fatalf("SaveScreenshot() error = %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("SaveScreenshot() path = %q, want inside %q", path, dir)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
}

func TestCapture(t *testing.T) {
	g := newTestGame(t, testRows...)
	s := Capture(g)
	if s.Session != "test-session" {
		t.Errorf("Session = %q, want test-session", s.Session)
	}
	if len(s.Entities) != 3 {
		t.Fatalf("len(Entities) = %d, want 3", len(s.Entities))
	}
	if s.Player == nil || !s.Player.Alive || s.Player.Health != entities.PlayerMaxHealth {
		t.Errorf("Player = %+v, want alive at full health", s.Player)
	}

	kinds := map[string]int{}
	for _, e := range s.Entities {
		kinds[e.Kind]++
	}
	for _, k := range []entities.Kind{entities.KindPlayer, entities.KindEnemy, entities.KindPickup} {
		if kinds[k.String()] != 1 {
			t.Errorf("entities of kind %s = %d, want 1", k, kinds[k.String()])
		}
	}
}

func TestPublisher_Offer(t *testing.T) {
	g := newTestGame(t, testRows...)
	pub := NewPublisher()
	pub.Offer(g)

	if pub.Latest().Session != "test-session" {
		t.Errorf("Latest() not captured on first offer")
	}
	if !strings.Contains(pub.Map(), "#@..E#") {
		t.Errorf("Map() = %q, want the dumped map", pub.Map())
	}

	// A second offer inside the interval is dropped.
	g.SessionID = "changed"
	pub.Offer(g)
	if pub.Latest().Session != "test-session" {
		t.Errorf("Offer within %v replaced the snapshot", PublishInterval)
	}
}

func TestRouter(t *testing.T) {
	pub := NewPublisher()
	ts := httptest.NewServer(NewRouter(pub))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/debug/map")
	if err != nil {
		t.Fatalf("GET /debug/map: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("GET /debug/map before publish = %d, want 503", resp.StatusCode)
	}

	g := newTestGame(t, testRows...)
	pub.Offer(g)

	resp, err = http.Get(ts.URL + "/debug/snapshot")
	if err != nil {
		t.Fatalf("GET /debug/snapshot: %v", err)
	}
	var s Snapshot
	err = json.NewDecoder(resp.Body).Decode(&s)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if s.Session != "test-session" || len(s.Entities) != 3 {
		t.Errorf("snapshot = %+v, want test-session with 3 entities", s)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics = %d, want 200", resp.StatusCode)
	}
}

func TestRouter_Stream(t *testing.T) {
	pub := NewPublisher()
	pub.Publish(Snapshot{Session: "streamed", Tick: 42}, "map")

	ts := httptest.NewServer(NewRouter(pub))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/debug/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	defer conn.Close()

	var s Snapshot
	if err := conn.ReadJSON(&s); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if s.Session != "streamed" || s.Tick != 42 {
		t.Errorf("streamed snapshot = %+v, want session streamed at tick 42", s)
	}
}
