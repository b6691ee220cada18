package resource

import (
	"errors"
	"strconv"
	"testing"
	"testing/fstest"
)

func testCache() (*Cache, fstest.MapFS) {
	fsys := fstest.MapFS{
		"levels/one.lvl": {Data: []byte("level")},
		"number.txt":     {Data: []byte("42")},
		"junk.txt":       {Data: []byte("x")},
	}
	return NewCache(fsys), fsys
}

func TestCache_Bytes(t *testing.T) {
	c, fsys := testCache()

	got, err := c.Bytes("levels/./one.lvl")
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if string(got) != "level" {
		t.Errorf("Bytes() = %q, want %q", got, "level")
	}

	delete(fsys, "levels/one.lvl")
	if _, err := c.Bytes("levels/one.lvl"); err != nil {
		t.Errorf("Bytes() after removal = %v, want memoized result", err)
	}
}

func TestCache_NotFound(t *testing.T) {
	c, _ := testCache()
	_, err := c.Bytes("missing.wav")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Bytes(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLoad(t *testing.T) {
	c, _ := testCache()
	calls := 0
	atoi := func(b []byte) (int, error) {
		calls++
		return strconv.Atoi(string(b))
	}

	for i := 0; i < 2; i++ {
		n, err := Load(c, "number.txt", atoi)
		if err != nil || n != 42 {
			t.Fatalf("Load() = %d, %v, want 42, nil", n, err)
		}
	}
	if calls != 1 {
		t.Errorf("decode called %d times, want 1", calls)
	}

	if _, err := Load(c, "junk.txt", atoi); err == nil {
		t.Error("Load(junk) error = nil, want decode error")
	}
	if _, err := Load(c, "number.txt", func(b []byte) (string, error) { return string(b), nil }); err == nil {
		t.Error("Load with a different type error = nil, want type mismatch")
	}
}
