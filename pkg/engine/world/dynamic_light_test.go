package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLightPool_FadeAndReclaim(t *testing.T) {
	p := NewLightPool()
	id := p.Add(DynamicLight{Color: mgl32.Vec3{1, 1, 1}, Radius: 3})
	p.MarkDestroyed(id)

	dt := float32(1.0 / 60)
	for i := 0; i < 9; i++ {
		p.Fade(dt)
	}
	l, ok := p.Get(id)
	if !ok {
		t.Fatal("light reclaimed after 0.15s, want still fading")
	}
	if !approx(l.Color[0], 1-LightFadeRate*0.15) {
		t.Errorf("color after 0.15s = %v, want %v", l.Color[0], 1-LightFadeRate*0.15)
	}

	for i := 0; i < 9; i++ {
		p.Fade(dt)
	}
	if _, ok := p.Get(id); ok {
		t.Error("light still in pool after 0.3s, want reclaimed")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestLightPool_ColorNeverNegative(t *testing.T) {
	p := NewLightPool()
	id := p.Add(DynamicLight{Color: mgl32.Vec3{0.05, 2, 0.01}})
	p.MarkDestroyed(id)

	p.Fade(1.0 / 60)
	l, ok := p.Get(id)
	if !ok {
		t.Fatal("light reclaimed while green channel is still lit")
	}
	if l.Color[0] != 0 || l.Color[2] != 0 {
		t.Errorf("color = %v, want red and blue clamped to 0", l.Color)
	}
}

func TestLightPool_LiveLightsDoNotFade(t *testing.T) {
	p := NewLightPool()
	id := p.Add(DynamicLight{Color: mgl32.Vec3{1, 0.5, 0}})
	for i := 0; i < 120; i++ {
		p.Fade(1.0 / 60)
	}
	l, ok := p.Get(id)
	if !ok || l.Color != (mgl32.Vec3{1, 0.5, 0}) {
		t.Errorf("live light = %v, %v, want unchanged", l, ok)
	}
}

func TestLightPool_Relevant(t *testing.T) {
	p := NewLightPool()
	viewer := mgl32.Vec3{0, 0, 0}

	p.Add(DynamicLight{Position: mgl32.Vec3{10, 0, 0}, Radius: 1, Color: mgl32.Vec3{1, 0, 0}})  // 10
	p.Add(DynamicLight{Position: mgl32.Vec3{1, 0, 0}, Radius: 4, Color: mgl32.Vec3{0, 1, 0}})   // 4
	p.Add(DynamicLight{Position: mgl32.Vec3{2, 0, 0}, Radius: 0.5, Color: mgl32.Vec3{0, 0, 1}}) // 1
	p.Add(DynamicLight{Position: mgl32.Vec3{0, 0, 4}, Radius: 1, Color: mgl32.Vec3{1, 1, 0}})   // 4, tie

	batch := p.Relevant(viewer)
	wantColors := []mgl32.Vec3{{0, 0, 1}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}
	if batch.Len() != len(wantColors) {
		t.Fatalf("Relevant returned %d lights, want %d", batch.Len(), len(wantColors))
	}
	for i, want := range wantColors {
		if batch.Colors[i] != want {
			t.Errorf("Relevant[%d] color = %v, want %v", i, batch.Colors[i], want)
		}
	}
	if len(batch.Positions) != batch.Len() || len(batch.Radii) != batch.Len() {
		t.Error("Relevant arrays are not parallel")
	}
}

func TestLightPool_RelevantCapped(t *testing.T) {
	p := NewLightPool()
	for i := 0; i < MaxRelevantLights+10; i++ {
		p.Add(DynamicLight{Position: mgl32.Vec3{float32(i), 0, 0}, Radius: 1})
	}
	batch := p.Relevant(mgl32.Vec3{})
	if batch.Len() != MaxRelevantLights {
		t.Fatalf("Relevant returned %d lights, want %d", batch.Len(), MaxRelevantLights)
	}
	if last := batch.Positions[MaxRelevantLights-1][0]; last != MaxRelevantLights-1 {
		t.Errorf("last relevant light at x=%v, want %d", last, MaxRelevantLights-1)
	}
}
