package input

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

func TestMapToIntent(t *testing.T) {
	ResetBindings()
	tests := []struct {
		code string
		want Action
	}{
		{"w", ActionMoveForward},
		{"arrow_left", ActionTurnLeft},
		{"mouse_left", ActionFire},
		{"2", ActionWeapon2},
		{"z", ActionNone},
	}
	for _, tt := range tests {
		got := MapToIntent(DebouncedInput{Device: DeviceKeyboard, Code: tt.code})
		if got.Action != tt.want {
			t.Errorf("MapToIntent(%q) = %s, want %s", tt.code, ActionName(got.Action), ActionName(tt.want))
		}
	}
}

func TestSetSingleBinding(t *testing.T) {
	ResetBindings()
	defer ResetBindings()

	SetSingleBinding(ActionFire, "f")
	codes := GetBindingsByAction()[ActionFire]
	if len(codes) != 2 || codes[0] != "f" || codes[1] != "mouse_left" {
		t.Errorf("fire bindings = %v, want [f mouse_left]", codes)
	}

	SetSingleBinding(ActionPause, "mouse_left")
	if got := MapToIntent(DebouncedInput{Code: "mouse_left"}); got.Action != ActionFire {
		t.Errorf("reserved code rebound to %s", ActionName(got.Action))
	}
}

func TestHeld(t *testing.T) {
	ResetBindings()
	h := NewHeld()
	h.Press(DebouncedInput{Code: "w"})
	h.Press(DebouncedInput{Code: "unbound"})
	h.Set(ActionFire)

	if !h.Has(ActionMoveForward) || !h.Has(ActionFire) {
		t.Error("Held missing pressed actions")
	}
	if !h.Take(ActionFire) || h.Take(ActionFire) {
		t.Error("Take should report a press exactly once")
	}
	h.Release(ActionFire)
	h.Set(ActionFire)
	if !h.Take(ActionFire) {
		t.Error("Take after a new press = false")
	}
	h.Release(ActionFire)
	if h.Has(ActionFire) {
		t.Error("Held still has released action")
	}
	h.Clear()
	if h.Has(ActionMoveForward) {
		t.Error("Held not empty after Clear")
	}
}

func TestReadCode(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("W\x1b[Aa\x1b[Z1\x03"))
	want := []string{"w", "arrow_up", "a", "", "1", "q"}
	for i, w := range want {
		got, err := readCode(br)
		if err != nil {
			t.Fatalf("readCode #%d error = %v", i, err)
		}
		if got != w {
			t.Errorf("readCode #%d = %q, want %q", i, got, w)
		}
	}
}

func TestTerminalReader_Start(t *testing.T) {
	r := newReader(strings.NewReader("ws"))
	ch, err := r.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	var got []string
	for ev := range ch {
		got = append(got, ev.Code)
		if ev.Device != DeviceTerminal {
			t.Errorf("device = %v, want terminal", ev.Device)
		}
	}
	if len(got) != 2 || got[0] != "w" || got[1] != "s" {
		t.Errorf("codes = %v, want [w s]", got)
	}
}
