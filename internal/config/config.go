// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Audio    AudioConfig    `yaml:"audio"`
	Frame    FrameConfig    `yaml:"frame"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width            int        `yaml:"width"`
	Height           int        `yaml:"height"`
	Fullscreen       bool       `yaml:"fullscreen"`
	VSync            bool       `yaml:"vsync"`
	MSAASamples      int        `yaml:"msaa_samples"`
	ShadowResolution int32      `yaml:"shadow_resolution"`
	ClearColor       [3]float32 `yaml:"clear_color"`
	ScreenshotDir    string     `yaml:"screenshot_dir"`
}

// CameraConfig holds the initial camera placement and navigation tuning.
// Angles are in degrees.
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	Target           [3]float32 `yaml:"target"`
	WorldUp          [3]float32 `yaml:"world_up"`
	FOVDegrees       float32    `yaml:"fov_degrees"`
	Near             float32    `yaml:"near"`
	Far              float32    `yaml:"far"`
	MoveSpeed        float32    `yaml:"move_speed"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	InitialYaw       float32    `yaml:"initial_yaw"`
	InitialPitch     float32    `yaml:"initial_pitch"`
	PitchLimit       float32    `yaml:"pitch_limit"`
}

// SceneConfig holds asset locations.
type SceneConfig struct {
	AssetDir  string   `yaml:"asset_dir"`
	ShaderDir string   `yaml:"shader_dir"` // empty = embedded shaders
	Skybox    []string `yaml:"skybox"`     // +X, -X, +Y, -Y, +Z, -Z
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Background   string  `yaml:"background"`
	MasterVolume float64 `yaml:"master_volume"`
	Muted        bool    `yaml:"muted"`
}

// FrameConfig holds frame loop settings.
type FrameConfig struct {
	// MaxDT clamps the per-frame delta in seconds. Zero leaves it unclamped.
	MaxDT float64 `yaml:"max_dt"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the cottage scene defaults.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            800,
			Height:           600,
			Fullscreen:       false,
			VSync:            true,
			MSAASamples:      4,
			ShadowResolution: 4096,
			ClearColor:       [3]float32{0.01, 0.01, 0.05},
			ScreenshotDir:    "screenshots",
		},
		Camera: CameraConfig{
			Position:         [3]float32{0.999, 0.2, -0.001681},
			Target:           [3]float32{0.0, 0.1392, -1.0},
			WorldUp:          [3]float32{0, 1, 0},
			FOVDegrees:       45,
			Near:             0.1,
			Far:              100,
			MoveSpeed:        0.05,
			MouseSensitivity: 0.05,
			InitialYaw:       -90,
			InitialPitch:     0,
			PitchLimit:       89,
		},
		Scene: SceneConfig{
			AssetDir: ".",
			Skybox: []string{
				"skybox/right.png",
				"skybox/left.png",
				"skybox/top.png",
				"skybox/bottom.png",
				"skybox/back.png",
				"skybox/front.png",
			},
		},
		Audio: AudioConfig{
			Background:   "audio/background.wav",
			MasterVolume: 0.8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the renderer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.ShadowResolution <= 0 {
		errs = append(errs, fmt.Errorf("graphics: shadow_resolution %d must be positive", c.Graphics.ShadowResolution))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.PitchLimit <= 0 || c.Camera.PitchLimit >= 90 {
		errs = append(errs, fmt.Errorf("camera: pitch_limit %g must be in (0, 90)", c.Camera.PitchLimit))
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov_degrees %g must be in (0, 180)", c.Camera.FOVDegrees))
	}
	if len(c.Scene.Skybox) != 6 {
		errs = append(errs, fmt.Errorf("scene: skybox needs 6 faces, got %d", len(c.Scene.Skybox)))
	}
	if c.Frame.MaxDT < 0 {
		errs = append(errs, fmt.Errorf("frame: max_dt %g must not be negative", c.Frame.MaxDT))
	}
	return errors.Join(errs...)
}
