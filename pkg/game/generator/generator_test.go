package generator

import (
	"bytes"
	"errors"
	"testing"

	"worship/pkg/engine/world"
	"worship/pkg/game/config"
	"worship/pkg/game/entities"
	"worship/pkg/game/gameplay"
	"worship/pkg/game/messages"
)

func tileAt(l *world.Level, x, y int) world.TileType {
	return l.Tiles[y*l.Width+x].Type
}

// countReachable returns how many air tiles are reachable from (x, y) via N/E/S/W.
func countReachable(l *world.Level, x, y int) int {
	type pos struct{ x, y int }
	visited := map[pos]bool{{x, y}: true}
	queue := []pos{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []pos{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := pos{p.x + d.x, p.y + d.y}
			if n.x < 0 || n.y < 0 || n.x >= l.Width || n.y >= l.Height || visited[n] {
				continue
			}
			if tileAt(l, n.x, n.y) != world.TileAir {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}
	return len(visited)
}

func countAir(l *world.Level) int {
	n := 0
	for _, t := range l.Tiles {
		if t.Type == world.TileAir {
			n++
		}
	}
	return n
}

func TestGenerateArena_TooSmall(t *testing.T) {
	if _, err := GenerateArena(5, 40, 1); !errors.Is(err, ErrTooSmall) {
		t.Errorf("GenerateArena(5, 40) error = %v, want ErrTooSmall", err)
	}
}

func TestGenerateArena_Layout(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		l, err := GenerateArena(48, 32, seed)
		if err != nil {
			t.Fatalf("GenerateArena(seed %d) error = %v", seed, err)
		}

		// Perimeter stays solid
		for x := 0; x < l.Width; x++ {
			if tileAt(l, x, 0) != world.TileWall || tileAt(l, x, l.Height-1) != world.TileWall {
				t.Fatalf("seed %d: perimeter opened at column %d", seed, x)
			}
		}

		spawns := 0
		var sx, sy int
		for _, obj := range l.Objects {
			x, y := int(obj.X), int(obj.Z)
			if tileAt(l, x, y) != world.TileAir {
				t.Errorf("seed %d: object type %d inside a wall at (%d, %d)", seed, obj.Type, x, y)
			}
			if gameplay.ObjectType(obj.Type) == gameplay.ObjectPlayerSpawn {
				spawns++
				sx, sy = x, y
			}
		}
		if spawns != 1 {
			t.Fatalf("seed %d: player spawns = %d, want 1", seed, spawns)
		}

		if got, want := countReachable(l, sx, sy), countAir(l); got != want {
			t.Errorf("seed %d: reachable air tiles = %d, want %d (isolated rooms)", seed, got, want)
		}
	}
}

func TestGenerateArena_Deterministic(t *testing.T) {
	encode := func(seed int64) []byte {
		t.Helper()
		l, err := GenerateArena(40, 40, seed)
		if err != nil {
			t.Fatalf("GenerateArena error = %v", err)
		}
		var buf bytes.Buffer
		if err := l.Encode(&buf); err != nil {
			t.Fatalf("Encode error = %v", err)
		}
		return buf.Bytes()
	}

	if !bytes.Equal(encode(7), encode(7)) {
		t.Errorf("same seed produced different levels")
	}
	if bytes.Equal(encode(7), encode(8)) {
		t.Errorf("different seeds produced identical levels")
	}
}

func TestGenerateArena_Loads(t *testing.T) {
	l, err := GenerateArena(48, 32, 5)
	if err != nil {
		t.Fatalf("GenerateArena error = %v", err)
	}

	var buf bytes.Buffer
	if err := l.Encode(&buf); err != nil {
		t.Fatalf("Encode error = %v", err)
	}
	decoded, err := world.DecodeLevel(&buf)
	if err != nil {
		t.Fatalf("DecodeLevel error = %v", err)
	}

	g, err := gameplay.Load(decoded, config.Normal, messages.English(), 1)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if _, ok := g.Player(); !ok {
		t.Fatalf("no player after Load")
	}

	enemies := 0
	g.World.Each(func(e world.Entity) {
		if entities.KindOf(e) == entities.KindEnemy {
			enemies++
		}
	})
	if enemies == 0 {
		t.Errorf("generated arena has no enemies")
	}
}
