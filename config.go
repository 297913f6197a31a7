package platformer

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the tuning constants of the motion model. Every field is
// effect-bearing; the zero value is not usable, start from DefaultConfig.
type Config struct {
	// Friction is the linear drag coefficient applied as velocity*Friction.
	// Negative values decelerate.
	Friction float64 `toml:"friction"`
	// Acceleration is the horizontal acceleration while left/right is held.
	Acceleration float64 `toml:"acceleration"`
	// JumpImpulse is the vertical jump velocity for normal gravity. Negative
	// is up.
	JumpImpulse float64 `toml:"jump_impulse"`
	// WallJumpImpulse is the horizontal velocity given away from a wall.
	WallJumpImpulse float64 `toml:"wall_jump_impulse"`
	// Gravity is the magnitude of the downward acceleration.
	Gravity float64 `toml:"gravity"`
	// WallSlide multiplies vertical velocity while falling against a wall.
	WallSlide float64 `toml:"wall_slide"`
	// AirJumps is the number of extra jumps available before landing again.
	// Walking off an edge without jumping uses one up.
	AirJumps int `toml:"air_jumps"`

	// SpinFriction is the drag of spin mode, applied to both velocity and
	// turn rate.
	SpinFriction float64 `toml:"spin_friction"`
	// SpinThrust is the forward acceleration along the heading in spin mode.
	// Reversing thrusts at a third of it.
	SpinThrust float64 `toml:"spin_thrust"`
	// SpinTurn is the turn acceleration in degrees per second squared.
	SpinTurn float64 `toml:"spin_turn"`

	// HitBox is the player's collision size.
	HitBox Vec2 `toml:"hit_box"`
	// ItemSize is the collision size of collectible items.
	ItemSize Vec2 `toml:"item_size"`

	// BobRange is the length of one bob cycle in phase units, and the
	// vertical travel of the bob in world units.
	BobRange float64 `toml:"bob_range"`
	// BobSpeed is the phase increment per tick.
	BobSpeed float64 `toml:"bob_speed"`

	// PlatformProximity is how far past its feet the player looks for a
	// moving platform to stay glued to.
	PlatformProximity float64 `toml:"platform_proximity"`

	// TileSize is the edge length of one map tile.
	TileSize float64 `toml:"tile_size"`
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Friction:          -1.5,
		Acceleration:      600,
		JumpImpulse:       -1000,
		WallJumpImpulse:   400,
		Gravity:           1500,
		WallSlide:         0.6,
		SpinFriction:      -2,
		SpinThrust:        450,
		SpinTurn:          350,
		HitBox:            Vec2{35, 35},
		ItemSize:          Vec2{30, 30},
		BobRange:          15,
		BobSpeed:          0.4,
		PlatformProximity: 3,
		TileSize:          70,
	}
}

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first constant that would make the simulation
// degenerate.
func (c Config) Validate() error {
	switch {
	case c.Friction > 0:
		return fmt.Errorf("%w: friction %v must not be positive", ErrInvalidConfig, c.Friction)
	case c.SpinFriction > 0:
		return fmt.Errorf("%w: spin friction %v must not be positive", ErrInvalidConfig, c.SpinFriction)
	case c.Gravity < 0:
		return fmt.Errorf("%w: gravity %v must not be negative", ErrInvalidConfig, c.Gravity)
	case c.HitBox.X <= 0 || c.HitBox.Y <= 0:
		return fmt.Errorf("%w: hit box %vx%v must have a positive size", ErrInvalidConfig, c.HitBox.X, c.HitBox.Y)
	case c.ItemSize.X <= 0 || c.ItemSize.Y <= 0:
		return fmt.Errorf("%w: item size %vx%v must have a positive size", ErrInvalidConfig, c.ItemSize.X, c.ItemSize.Y)
	case c.WallSlide < 0 || c.WallSlide > 1:
		return fmt.Errorf("%w: wall slide %v must be in [0, 1]", ErrInvalidConfig, c.WallSlide)
	case c.BobRange <= 0 || c.BobSpeed < 0:
		return fmt.Errorf("%w: bob range %v / speed %v", ErrInvalidConfig, c.BobRange, c.BobSpeed)
	case c.PlatformProximity < 0:
		return fmt.Errorf("%w: platform proximity %v must not be negative", ErrInvalidConfig, c.PlatformProximity)
	case c.AirJumps < 0:
		return fmt.Errorf("%w: air jumps %d must not be negative", ErrInvalidConfig, c.AirJumps)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size %v must be positive", ErrInvalidConfig, c.TileSize)
	}
	return nil
}

// LoadConfig reads a TOML tuning file. Keys missing from the file keep their
// DefaultConfig values. Vector keys are tables: hit_box = { X = 35, Y = 35 }.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig is LoadConfig for in-memory TOML.
func DecodeConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("decode config: unknown key %q", undec[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
