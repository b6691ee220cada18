package world

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// LevelMagic starts every level file.
const LevelMagic uint64 = 7815552959266505037

// maxLevelTiles guards allocations against corrupt headers.
const maxLevelTiles = 1 << 24

var (
	ErrBadMagic  = errors.New("invalid level header magic")
	ErrTruncated = errors.New("level data truncated")
	ErrCorrupt   = errors.New("level data corrupt")

	// ErrDuplicateSpawn is returned by level consumers that find more than one
	// player spawn.
	ErrDuplicateSpawn = errors.New("duplicate player spawn")
)

type levelHeader struct {
	Magic       uint64
	Width       uint32
	Height      uint32
	ObjectCount uint32
}

// TileRecord is one serialized tile.
type TileRecord struct {
	Type           TileType
	TextureWall    uint16
	TextureFloor   uint16
	TextureCeiling uint16
}

// Object is one serialized spawn record. Type ids belong to the game.
type Object struct {
	Type uint8
	X    float32
	Z    float32
}

// Level is a decoded level file. Tiles are row-major, Width per row.
type Level struct {
	Width   int
	Height  int
	Tiles   []TileRecord
	Objects []Object
}

// DecodeLevel reads a little-endian level file.
func DecodeLevel(r io.Reader) (*Level, error) {
	var header levelHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading header: %w", truncated(err))
	}
	if header.Magic != LevelMagic {
		return nil, fmt.Errorf("%w: got %d", ErrBadMagic, header.Magic)
	}
	if header.Width == 0 || header.Height == 0 || uint64(header.Width)*uint64(header.Height) > maxLevelTiles {
		return nil, fmt.Errorf("%w: size %dx%d", ErrCorrupt, header.Width, header.Height)
	}

	level := &Level{
		Width:   int(header.Width),
		Height:  int(header.Height),
		Tiles:   make([]TileRecord, int(header.Width)*int(header.Height)),
		Objects: make([]Object, 0, min(int(header.ObjectCount), 4096)),
	}

	if err := binary.Read(r, binary.LittleEndian, level.Tiles); err != nil {
		return nil, fmt.Errorf("reading tiles: %w", truncated(err))
	}
	for i, t := range level.Tiles {
		if t.Type != TileAir && t.Type != TileWall {
			return nil, fmt.Errorf("%w: tile %d has type %d", ErrCorrupt, i, t.Type)
		}
	}

	for i := uint32(0); i < header.ObjectCount; i++ {
		var obj Object
		if err := binary.Read(r, binary.LittleEndian, &obj); err != nil {
			return nil, fmt.Errorf("reading object %d: %w", i, truncated(err))
		}
		level.Objects = append(level.Objects, obj)
	}

	return level, nil
}

// Encode writes the level in the format read by DecodeLevel.
func (l *Level) Encode(w io.Writer) error {
	if len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("%w: %d tiles for %dx%d", ErrCorrupt, len(l.Tiles), l.Width, l.Height)
	}
	header := levelHeader{
		Magic:       LevelMagic,
		Width:       uint32(l.Width),
		Height:      uint32(l.Height),
		ObjectCount: uint32(len(l.Objects)),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, l.Tiles); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, l.Objects)
}

// Grid builds a tile grid from the level's tile records.
func (l *Level) Grid() *Grid {
	g := NewGrid(l.Width, l.Height)
	g.ForEachTile(func(c Coord, t *Tile) {
		rec := l.Tiles[c.Y*l.Width+c.X]
		t.Type = rec.Type
		t.TextureWall = rec.TextureWall
		t.TextureFloor = rec.TextureFloor
		t.TextureCeiling = rec.TextureCeiling
	})
	return g
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}
