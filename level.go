package platformer

import (
	"errors"
	"fmt"
	"math"

	"github.com/BurntSushi/toml"
)

// Placement puts one obstacle into a level.
type Placement struct {
	Kind ObstacleKind `toml:"kind"`
	Box  Rect         `toml:"box"`
	// Path is only read for ObstacleMovingWall.
	Path Path `toml:"path"`
	// Bounce overrides DefaultBounce when set.
	Bounce *float64 `toml:"bounce"`
}

// bounce returns the placement's bounce factor.
func (p Placement) bounce() float64 {
	if p.Bounce == nil {
		return DefaultBounce
	}
	return *p.Bounce
}

// ItemPlacement puts one collectible into a level, centered on Position.
type ItemPlacement struct {
	Kind     string `toml:"kind"`
	Position Vec2   `toml:"position"`
}

// Level is the static description a World is built from.
type Level struct {
	Name   string  `toml:"name"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	// Spawn is where the player's center starts and respawns.
	Spawn     Vec2            `toml:"spawn"`
	Obstacles []Placement     `toml:"obstacles"`
	Items     []ItemPlacement `toml:"items"`
	// WrapHorizontal teleports the player to the opposite side when its
	// center leaves [0, Width].
	WrapHorizontal bool `toml:"wrap_horizontal"`
}

// ErrInvalidLevel is wrapped by every error returned from Level.Validate.
var ErrInvalidLevel = errors.New("invalid level")

// Bounds returns the level area with its origin at (0, 0).
func (l Level) Bounds() Rect {
	return Rect{Width: l.Width, Height: l.Height}
}

// Validate rejects levels the simulation cannot run: non-positive sizes,
// degenerate obstacle boxes, unknown kinds and invalid paths.
func (l Level) Validate() error {
	if !(l.Width > 0) || !(l.Height > 0) {
		return fmt.Errorf("%w: size %vx%v must be positive", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, p := range l.Obstacles {
		if !(p.Box.Width > 0) || !(p.Box.Height > 0) {
			return fmt.Errorf("%w: obstacle %d box %vx%v must have a positive size",
				ErrInvalidLevel, i, p.Box.Width, p.Box.Height)
		}
		if b := p.bounce(); !(b >= 0) || math.IsInf(b, 0) {
			return fmt.Errorf("%w: obstacle %d bounce %v must not be negative", ErrInvalidLevel, i, b)
		}
		switch p.Kind {
		case ObstacleWall:
		case ObstacleMovingWall:
			if err := p.Path.Validate(); err != nil {
				return fmt.Errorf("%w: obstacle %d: %w", ErrInvalidLevel, i, err)
			}
		default:
			return fmt.Errorf("%w: obstacle %d kind %d", ErrInvalidLevel, i, p.Kind)
		}
	}
	return nil
}

// AddTiles appends one static wall per merged run of solid tiles in layer.
func (l *Level) AddTiles(layer *TileLayer, tileSize float64) {
	l.Obstacles = append(l.Obstacles, layer.WallPlacements(tileSize)...)
}

// LoadLevel reads a level from a TOML file and validates it.
func LoadLevel(path string) (Level, error) {
	var l Level
	md, err := toml.DecodeFile(path, &l)
	if err != nil {
		return Level{}, fmt.Errorf("load level %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Level{}, fmt.Errorf("load level %s: unknown key %q", path, undec[0].String())
	}
	if err := l.Validate(); err != nil {
		return Level{}, fmt.Errorf("load level %s: %w", path, err)
	}
	return l, nil
}

// DecodeLevel is LoadLevel for in-memory TOML.
func DecodeLevel(data string) (Level, error) {
	var l Level
	md, err := toml.Decode(data, &l)
	if err != nil {
		return Level{}, fmt.Errorf("decode level: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Level{}, fmt.Errorf("decode level: unknown key %q", undec[0].String())
	}
	if err := l.Validate(); err != nil {
		return Level{}, fmt.Errorf("decode level: %w", err)
	}
	return l, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k ObstacleKind) MarshalText() ([]byte, error) {
	switch k {
	case ObstacleWall, ObstacleMovingWall:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("obstacle kind %d", k)
}

// UnmarshalText implements encoding.TextUnmarshaler with the names returned
// by String.
func (k *ObstacleKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "wall":
		*k = ObstacleWall
	case "moving-wall":
		*k = ObstacleMovingWall
	default:
		return fmt.Errorf("%w: obstacle kind %q", ErrInvalidLevel, text)
	}
	return nil
}
