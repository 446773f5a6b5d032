package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Input  InputConfig  `yaml:"input"`
	Motion MotionConfig `yaml:"motion"`
	Camera CameraConfig `yaml:"camera"`
	Screen ScreenConfig `yaml:"screen"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
	Web    WebConfig    `yaml:"web"`
}

type SerialConfig struct {
	// Port is the device identifier, e.g. "/dev/rfcomm0" or "COM5".
	// "auto" scans available ports for a Bluetooth serial module.
	Port string `yaml:"port"`
	Baud uint   `yaml:"baud"`
	// ReadTimeoutMs bounds a single blocking read so the reader can
	// observe a stop signal.
	ReadTimeoutMs int `yaml:"read_timeout_ms"`
}

type InputConfig struct {
	AxisMin  int     `yaml:"axis_min"`
	AxisMax  int     `yaml:"axis_max"`
	Deadzone float64 `yaml:"deadzone"`

	MoveSensitivity float64 `yaml:"move_sensitivity"`
	TurnSensitivity float64 `yaml:"turn_sensitivity"`
}

type MotionConfig struct {
	ForwardSpeed float64 `yaml:"forward_speed"` // units/s
	RotSpeed     float64 `yaml:"rot_speed"`     // deg/s
	PadSpeed     float64 `yaml:"pad_speed"`     // px/s, 2D variant
	MaxDT        float64 `yaml:"max_dt"`        // seconds
}

type CameraConfig struct {
	FollowDistance float64 `yaml:"follow_distance"`
	FollowHeight   float64 `yaml:"follow_height"`
	FOV            float64 `yaml:"fov"` // degrees
}

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
}

type MQTTConfig struct {
	Broker          string `yaml:"broker"`
	ClientIDGame    string `yaml:"client_id_game"`
	ClientIDPad     string `yaml:"client_id_pad"`
	ClientIDConsole string `yaml:"client_id_console"`
	ClientIDWeb     string `yaml:"client_id_web"`
	TopicState      string `yaml:"topic_state"`
}

type WebConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the configuration used when no file overrides it.
// Values match the reference hardware: a 10-bit analog stick behind a
// 9600 baud HC-05 link.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:          "auto",
			Baud:          9600,
			ReadTimeoutMs: 100,
		},
		Input: InputConfig{
			AxisMin:         0,
			AxisMax:         1023,
			Deadzone:        60,
			MoveSensitivity: 0.6,
			TurnSensitivity: 0.25,
		},
		Motion: MotionConfig{
			ForwardSpeed: 220.0,
			RotSpeed:     160.0,
			PadSpeed:     160.0,
			MaxDT:        1.0 / 15.0,
		},
		Camera: CameraConfig{
			FollowDistance: 8.0,
			FollowHeight:   2.5,
			FOV:            90.0,
		},
		Screen: ScreenConfig{
			Width:  1280,
			Height: 720,
			FPS:    60,
		},
		MQTT: MQTTConfig{
			Broker:          "tcp://localhost:1883",
			ClientIDGame:    "joyvis-game",
			ClientIDPad:     "joyvis-pad",
			ClientIDConsole: "joyvis-console",
			ClientIDWeb:     "joyvis-web",
			TopicState:      "joyvis/state",
		},
		Web: WebConfig{
			Listen: ":8080",
		},
	}
}

// Load reads the YAML config at path over the defaults. A missing file is
// not an error: every value has a default and the whole config surface is
// optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the config file named by the JOYVIS_CONFIG environment
// variable, falling back to configs/config.yaml.
func FromEnv() (*Config, error) {
	path := os.Getenv("JOYVIS_CONFIG")
	if path == "" {
		path = "configs/config.yaml"
	}
	return Load(path)
}

// validate checks that the loaded values are usable.
func (c *Config) validate() error {
	if c.Serial.Port == "" {
		return fmt.Errorf("serial.port must be a device path or \"auto\"")
	}
	if c.Serial.Baud == 0 {
		return fmt.Errorf("serial.baud is required")
	}
	if c.Serial.ReadTimeoutMs <= 0 {
		return fmt.Errorf("serial.read_timeout_ms must be positive")
	}
	if c.Input.AxisMax <= c.Input.AxisMin {
		return fmt.Errorf("input.axis_max must be greater than input.axis_min")
	}
	if c.Input.Deadzone < 0 {
		return fmt.Errorf("input.deadzone must not be negative")
	}
	if c.Input.Deadzone >= float64(c.Input.AxisMax-c.Input.AxisMin)/2 {
		return fmt.Errorf("input.deadzone %v swallows the whole axis range", c.Input.Deadzone)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov %v out of range (0, 180)", c.Camera.FOV)
	}
	if c.Motion.MaxDT <= 0 {
		return fmt.Errorf("motion.max_dt must be positive")
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen dimensions must be positive")
	}
	if c.Screen.FPS <= 0 {
		return fmt.Errorf("screen.fps must be positive")
	}
	return nil
}
