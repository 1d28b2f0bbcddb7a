package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BodySpec is the collider and material shared by every dynamic prefab.
// Sizes are in tiles so prefabs scale with the level.
type BodySpec struct {
	Width         float64  `yaml:"width"`
	Height        float64  `yaml:"height"`
	Radius        float64  `yaml:"radius"`
	Mass          float64  `yaml:"mass"`
	Friction      float64  `yaml:"friction"`
	Elasticity    float64  `yaml:"elasticity"`
	FixedRotation bool     `yaml:"fixed_rotation"`
	GravityScale  *float64 `yaml:"gravity_scale"`
}

// Gravity returns the configured gravity scale, defaulting to 1.
func (b BodySpec) Gravity() float64 {
	if b.GravityScale == nil {
		return 1
	}
	return *b.GravityScale
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	MoveForce   float64         `yaml:"move_force"`
	JumpImpulse float64         `yaml:"jump_impulse"`
	MaxSpeed    float64         `yaml:"max_speed"`
	Body        BodySpec        `yaml:"body"`
	Color       *YAMLColor      `yaml:"color"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type BallSpec struct {
	Name        string          `yaml:"name"`
	Body        BodySpec        `yaml:"body"`
	Color       *YAMLColor      `yaml:"color"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadBallSpec() (*BallSpec, error) {
	spec, err := LoadSpec[BallSpec]("ball.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ObstacleSpec describes a kinematic platform that patrols horizontally.
// Speed and Range are in tiles and may be overridden per level object.
type ObstacleSpec struct {
	Name        string          `yaml:"name"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	Friction    float64         `yaml:"friction"`
	Speed       float64         `yaml:"speed"`
	Range       float64         `yaml:"range"`
	Color       *YAMLColor      `yaml:"color"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadObstacleSpec() (*ObstacleSpec, error) {
	spec, err := LoadSpec[ObstacleSpec]("obstacle.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

type YAMLColor struct {
	color.Color
}

// RGBAOr returns the colour as color.RGBA, or def when c is unset.
func (c *YAMLColor) RGBAOr(def color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return def
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
