package stride

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the movement tuning constants, all overridable at
// construction. Angles are radians, distances world units, speeds world
// units per second.
type Config struct {
	// MoveSpeed scales the horizontal movement intent
	MoveSpeed float64 `yaml:"move_speed"`
	// RotationSpeed scales the look intent
	RotationSpeed float64 `yaml:"rotation_speed"`
	// FallSpeed is the downward speed of the falling pass
	FallSpeed float64 `yaml:"fall_speed"`
	// MaxBounces bounds the slide resolver loop on worst-case geometry
	MaxBounces int `yaml:"max_bounces"`
	// AnglePower shapes the attenuation curve of the slide resolver
	AnglePower float64 `yaml:"angle_power"`
	// MinPitch and MaxPitch clamp the stored look pitch
	MinPitch float64 `yaml:"min_pitch"`
	MaxPitch float64 `yaml:"max_pitch"`
	// Skin is the anti-stick epsilon pushed along a hit normal after contact
	Skin float64 `yaml:"skin"`
	// MaxSlideAngle normalizes the angle-attenuation term
	MaxSlideAngle float64 `yaml:"max_slide_angle"`
	// GroundProbe is the length of the downward grounded-check sweep;
	// keep it larger than Skin or a resting character never reads as
	// grounded
	GroundProbe float64 `yaml:"ground_probe"`
}

// DefaultConfig returns the default tuning
func DefaultConfig() Config {
	return Config{
		MoveSpeed:     5.0,
		RotationSpeed: 2.0,
		FallSpeed:     10.0,
		MaxBounces:    5,
		AnglePower:    0.5,
		MinPitch:      -math.Pi / 2,
		MaxPitch:      math.Pi / 2,
		Skin:          1e-3,
		MaxSlideAngle: math.Pi / 2,
		GroundProbe:   0.05,
	}
}

// LoadConfig reads a YAML tuning file over the defaults: keys absent from
// the file keep their default value
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("tuning %s: %w", path, err)
	}

	return cfg, nil
}
