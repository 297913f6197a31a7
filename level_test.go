package platformer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testLevelTOML = `
name = "test"
width = 1000.0
height = 600.0
spawn = { X = 100.0, Y = 100.0 }
wrap_horizontal = true

[[obstacles]]
kind = "wall"
box = { X = 0.0, Y = 500.0, Width = 1000.0, Height = 70.0 }

[[obstacles]]
kind = "moving-wall"
box = { X = 200.0, Y = 300.0, Width = 100.0, Height = 20.0 }
[obstacles.path]
loops_back = true
[[obstacles.path.segments]]
speed = 60.0
angle = 0.0
distance = 200.0

[[items]]
kind = "coin"
position = { X = 400.0, Y = 450.0 }
`

func TestLevelValidate(t *testing.T) {
	valid := floorLevel()
	if err := valid.Validate(); err != nil {
		t.Fatalf("floorLevel().Validate() = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Level)
	}{
		{"zero width", func(l *Level) { l.Width = 0 }},
		{"negative height", func(l *Level) { l.Height = -5 }},
		{"degenerate box", func(l *Level) { l.Obstacles[0].Box.Height = 0 }},
		{"unknown kind", func(l *Level) { l.Obstacles[0].Kind = ObstacleKind(9) }},
		{"negative bounce", func(l *Level) { b := -0.5; l.Obstacles[0].Bounce = &b }},
		{"bad path", func(l *Level) {
			l.Obstacles = append(l.Obstacles, Placement{
				Kind: ObstacleMovingWall,
				Box:  Rect{Width: 10, Height: 10},
				Path: Path{Segments: []Segment{{Speed: 0, Distance: 10}}},
			})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := floorLevel()
			tt.mutate(&l)
			if err := l.Validate(); !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("Validate() = %v, want ErrInvalidLevel", err)
			}
		})
	}
}

func TestLevelValidateWrapsPathError(t *testing.T) {
	l := floorLevel()
	l.Obstacles = append(l.Obstacles, Placement{
		Kind: ObstacleMovingWall,
		Box:  Rect{Width: 10, Height: 10},
		Path: Path{Segments: []Segment{{Speed: 1, Distance: -1}}},
	})
	if err := l.Validate(); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Validate() = %v, want ErrInvalidPath in the chain", err)
	}
}

func TestLevelBounds(t *testing.T) {
	l := Level{Width: 640, Height: 480}
	if got := l.Bounds(); got != (Rect{Width: 640, Height: 480}) {
		t.Errorf("Bounds() = %v, want 640x480 at origin", got)
	}
}

func TestDecodeLevel(t *testing.T) {
	l, err := DecodeLevel(testLevelTOML)
	if err != nil {
		t.Fatalf("DecodeLevel: %v", err)
	}
	if l.Name != "test" || l.Width != 1000 || l.Height != 600 || !l.WrapHorizontal {
		t.Errorf("header = %q %vx%v wrap=%v", l.Name, l.Width, l.Height, l.WrapHorizontal)
	}
	if l.Spawn != (Vec2{100, 100}) {
		t.Errorf("spawn = %v, want (100, 100)", l.Spawn)
	}
	if len(l.Obstacles) != 2 {
		t.Fatalf("obstacles = %d, want 2", len(l.Obstacles))
	}
	if l.Obstacles[0].Kind != ObstacleWall || l.Obstacles[0].Box != (Rect{X: 0, Y: 500, Width: 1000, Height: 70}) {
		t.Errorf("obstacle 0 = %+v", l.Obstacles[0])
	}
	mw := l.Obstacles[1]
	if mw.Kind != ObstacleMovingWall || !mw.Path.LoopsBack || len(mw.Path.Segments) != 1 {
		t.Fatalf("obstacle 1 = %+v", mw)
	}
	if mw.Path.Segments[0] != (Segment{Speed: 60, Angle: 0, Distance: 200}) {
		t.Errorf("segment = %+v", mw.Path.Segments[0])
	}
	if len(l.Items) != 1 || l.Items[0].Kind != "coin" || l.Items[0].Position != (Vec2{400, 450}) {
		t.Errorf("items = %+v", l.Items)
	}

	if _, err := NewWorld(DefaultConfig(), l); err != nil {
		t.Errorf("NewWorld from decoded level: %v", err)
	}
}

func TestDecodeLevelUnknownKind(t *testing.T) {
	_, err := DecodeLevel(`
width = 100.0
height = 100.0
[[obstacles]]
kind = "lava"
box = { X = 0.0, Y = 0.0, Width = 10.0, Height = 10.0 }
`)
	if err == nil {
		t.Error("expected error for unknown obstacle kind")
	}
}

func TestDecodeLevelUnknownKey(t *testing.T) {
	_, err := DecodeLevel("width = 100.0\nheight = 100.0\ngravity = 5.0\n")
	if err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestDecodeLevelBounce(t *testing.T) {
	l, err := DecodeLevel(`
width = 100.0
height = 100.0
[[obstacles]]
kind = "wall"
box = { X = 0.0, Y = 50.0, Width = 100.0, Height = 10.0 }
bounce = 0.25
[[obstacles]]
kind = "wall"
box = { X = 0.0, Y = 0.0, Width = 100.0, Height = 10.0 }
`)
	if err != nil {
		t.Fatalf("DecodeLevel: %v", err)
	}
	w := newTestWorld(t, l)
	if got := w.Obstacles()[0].Bounce; got != 0.25 {
		t.Errorf("bounce = %v, want 0.25", got)
	}
	if got := w.Obstacles()[1].Bounce; got != DefaultBounce {
		t.Errorf("bounce = %v, want the default %v", got, DefaultBounce)
	}
}

func TestLoadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.toml")
	if err := os.WriteFile(path, []byte(testLevelTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if len(l.Obstacles) != 2 || len(l.Items) != 1 {
		t.Errorf("obstacles = %d items = %d, want 2 and 1", len(l.Obstacles), len(l.Items))
	}
}

func TestLoadLevelUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.toml")
	data := "width = 100.0\nheight = 100.0\ngravity = 5.0\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLevel(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestObstacleKindText(t *testing.T) {
	for _, k := range []ObstacleKind{ObstacleWall, ObstacleMovingWall} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", k, err)
		}
		var got ObstacleKind
		if err := got.UnmarshalText(text); err != nil || got != k {
			t.Errorf("UnmarshalText(%q) = %v, %v; want %v", text, got, err, k)
		}
	}
	if _, err := ObstacleKind(7).MarshalText(); err == nil {
		t.Error("expected error marshaling unknown kind")
	}
}

func TestTileLayerWallPlacements(t *testing.T) {
	// Row 0: two solid tiles (one flipped), a gap, one solid tile.
	// Row 1: empty.
	// Row 2: a full row.
	data := []uint32{
		1, 2 | tileFlipH, 0, 3,
		0, 0, 0, 0,
		4, 4, 4, 4 | tileFlipD,
	}
	layer, err := NewTileLayer(4, 3, data)
	if err != nil {
		t.Fatalf("NewTileLayer: %v", err)
	}

	got := layer.WallPlacements(70)
	want := []Rect{
		{X: 0, Y: 0, Width: 140, Height: 70},
		{X: 210, Y: 0, Width: 70, Height: 70},
		{X: 0, Y: 140, Width: 280, Height: 70},
	}
	if len(got) != len(want) {
		t.Fatalf("placements = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].Kind != ObstacleWall || got[i].Box != want[i] {
			t.Errorf("placement %d = %+v, want wall %v", i, got[i], want[i])
		}
	}
}

func TestTileLayerGIDAndFlags(t *testing.T) {
	layer, err := NewTileLayer(2, 1, []uint32{5 | tileFlipH | tileFlipV, 0})
	if err != nil {
		t.Fatal(err)
	}
	if got := layer.GID(0, 0); got != 5 {
		t.Errorf("GID(0,0) = %d, want 5", got)
	}
	h, v, d := layer.Flipped(0, 0)
	if !h || !v || d {
		t.Errorf("Flipped(0,0) = %v %v %v, want true true false", h, v, d)
	}
	if layer.Solid(1, 0) || layer.Solid(-1, 0) || layer.Solid(0, 5) {
		t.Error("empty or out-of-range tile reported solid")
	}

	layer.SetTile(1, 0, 9)
	if !layer.Solid(1, 0) {
		t.Error("SetTile did not make the tile solid")
	}
	if cols, rows := layer.Size(); cols != 2 || rows != 1 {
		t.Errorf("Size() = %d, %d, want 2, 1", cols, rows)
	}
}

func TestNewTileLayerErrors(t *testing.T) {
	if _, err := NewTileLayer(0, 2, nil); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("zero width: err = %v, want ErrInvalidLevel", err)
	}
	if _, err := NewTileLayer(2, 2, []uint32{1, 2, 3}); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("short data: err = %v, want ErrInvalidLevel", err)
	}
}

func TestLevelAddTiles(t *testing.T) {
	layer, err := NewTileLayer(3, 2, []uint32{0, 0, 0, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	l := Level{Width: 210, Height: 140, Spawn: Vec2{105, 50}}
	l.AddTiles(layer, 70)
	if len(l.Obstacles) != 1 || l.Obstacles[0].Box != (Rect{X: 0, Y: 70, Width: 210, Height: 70}) {
		t.Fatalf("obstacles = %+v, want one merged floor", l.Obstacles)
	}

	w := newTestWorld(t, l)
	step(w, 120, Input{})
	if !w.Player().OnGround() || w.Player().Position().Y != 52.5 {
		t.Errorf("onGround=%v y=%v, want resting on the tile floor at 52.5",
			w.Player().OnGround(), w.Player().Position().Y)
	}
}
