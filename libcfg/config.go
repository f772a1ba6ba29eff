package libcfg

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"stereo-gl/libvr"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "stereo-gl.yaml"

type Config struct {
	Window   Window   `yaml:"window"`
	Render   Render   `yaml:"render"`
	Hmd      Hmd      `yaml:"hmd"`
	Capture  Capture  `yaml:"capture"`
	Controls Controls `yaml:"controls"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	Vsync  bool   `yaml:"vsync"`
}

type Render struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	// one of uint8, uint16, uint32 or auto
	IndexType    string `yaml:"index_type"`
	DebugContext bool   `yaml:"debug_context"`
	// vertical field of view of the flat view, in degrees
	FlatFov float32 `yaml:"flat_fov"`
}

type Hmd struct {
	Emulate      bool       `yaml:"emulate"`
	Name         string     `yaml:"name"`
	RenderWidth  int        `yaml:"render_width"`
	RenderHeight int        `yaml:"render_height"`
	Ipd          float32    `yaml:"ipd"`
	Fov          float32    `yaml:"fov"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	RefreshRate  float64    `yaml:"refresh_rate"`
	PresentDelay int        `yaml:"present_delay"`
	HeadPosition [3]float32 `yaml:"head_position"`
	Sway         bool       `yaml:"sway"`
}

type Capture struct {
	Dir string `yaml:"dir"`
	// none or lz4
	Compression string `yaml:"compression"`
}

type Controls struct {
	ToggleKey  string `yaml:"toggle_key"`
	CaptureKey string `yaml:"capture_key"`
	// mouse look sensitivity in degrees per pixel
	LookSpeed float32 `yaml:"look_speed"`
}

var (
	indexTypes   = []string{"uint8", "uint16", "uint32", "auto"}
	compressions = []string{"none", "lz4"}
)

func Default() *Config {
	emu := libvr.DefaultEmulatorConfig()
	return &Config{
		Window: Window{
			Width:  1600,
			Height: 900,
			Title:  "Stereo Cube",
			Vsync:  true,
		},
		Render: Render{
			ClearColor:   [4]float32{0, 0, 0, 1},
			IndexType:    "uint16",
			DebugContext: true,
			FlatFov:      45,
		},
		Hmd: Hmd{
			Emulate:      true,
			Name:         emu.Name,
			RenderWidth:  emu.RenderWidth,
			RenderHeight: emu.RenderHeight,
			Ipd:          emu.Ipd,
			Fov:          emu.FieldOfView,
			Near:         emu.Near,
			Far:          emu.Far,
			RefreshRate:  emu.RefreshRate,
			PresentDelay: emu.PresentDelay,
			HeadPosition: emu.HeadPosition,
			Sway:         emu.Sway,
		},
		Capture: Capture{
			Dir:         "captures",
			Compression: "lz4",
		},
		Controls: Controls{
			ToggleKey:  "V",
			CaptureKey: "F12",
			LookSpeed:  0.35,
		},
	}
}

// LoadFromPath reads path on top of the defaults. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %v: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %v: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height))
	}
	if !slices.Contains(indexTypes, strings.ToLower(cfg.Render.IndexType)) {
		errs = append(errs, fmt.Errorf("render.index_type %q must be one of %v", cfg.Render.IndexType, indexTypes))
	}
	if cfg.Render.FlatFov <= 0 || cfg.Render.FlatFov >= 180 {
		errs = append(errs, fmt.Errorf("render.flat_fov %v must be in (0, 180)", cfg.Render.FlatFov))
	}
	if cfg.Hmd.RenderWidth <= 0 || cfg.Hmd.RenderHeight <= 0 {
		errs = append(errs, fmt.Errorf("hmd render size %dx%d must be positive", cfg.Hmd.RenderWidth, cfg.Hmd.RenderHeight))
	}
	if cfg.Hmd.Fov <= 0 || cfg.Hmd.Fov >= 180 {
		errs = append(errs, fmt.Errorf("hmd.fov %v must be in (0, 180)", cfg.Hmd.Fov))
	}
	if cfg.Hmd.Near <= 0 || cfg.Hmd.Far <= cfg.Hmd.Near {
		errs = append(errs, fmt.Errorf("hmd clip planes %v..%v are invalid", cfg.Hmd.Near, cfg.Hmd.Far))
	}
	if cfg.Hmd.Ipd < 0 {
		errs = append(errs, fmt.Errorf("hmd.ipd %v must not be negative", cfg.Hmd.Ipd))
	}
	if cfg.Hmd.RefreshRate < 0 {
		errs = append(errs, fmt.Errorf("hmd.refresh_rate %v must not be negative", cfg.Hmd.RefreshRate))
	}
	if cfg.Hmd.PresentDelay < 0 {
		errs = append(errs, fmt.Errorf("hmd.present_delay %v must not be negative", cfg.Hmd.PresentDelay))
	}
	if !slices.Contains(compressions, strings.ToLower(cfg.Capture.Compression)) {
		errs = append(errs, fmt.Errorf("capture.compression %q must be one of %v", cfg.Capture.Compression, compressions))
	}
	if cfg.Controls.ToggleKey == "" {
		errs = append(errs, errors.New("controls.toggle_key must be set"))
	}
	if cfg.Controls.CaptureKey == "" {
		errs = append(errs, errors.New("controls.capture_key must be set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
