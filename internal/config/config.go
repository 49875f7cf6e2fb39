package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"mu-bmd-pose/internal/crypto"
)

// Config holds the model to pose, the frames to render and render settings.
// Sources apply in order: JSON file, environment, CLI flags, defaults.
type Config struct {
	ModelPath   string   `json:"model"        env:"MU_POSE_MODEL"`
	TextureDirs []string `json:"texture_dirs" env:"MU_POSE_TEXTURE_DIRS" envSeparator:","`
	OutputDir   string   `json:"output_dir"   env:"MU_POSE_OUTPUT_DIR"`

	Action     int    `json:"action"      env:"MU_POSE_ACTION"`
	FirstFrame int    `json:"first_frame" env:"MU_POSE_FIRST_FRAME"`
	FrameCount int    `json:"frame_count" env:"MU_POSE_FRAME_COUNT"` // 0 = every key of the action
	View       string `json:"view"        env:"MU_POSE_VIEW"`

	RenderSize  int  `json:"render_size"  env:"MU_POSE_RENDER_SIZE"`
	Supersample int  `json:"supersample"  env:"MU_POSE_SUPERSAMPLE"`
	Workers     int  `json:"workers"      env:"MU_POSE_WORKERS"`
	KeepEffects bool `json:"keep_effects" env:"MU_POSE_KEEP_EFFECTS"` // render glow and particle meshes too

	LEAKey string `json:"lea_key" env:"MU_POSE_LEA_KEY"` // hex, needed for v15 models
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Negative Action and FirstFrame mean "not given".
type Flags struct {
	ModelPath  string
	TextureDir string
	OutputDir  string
	Action     int
	FirstFrame int
	FrameCount int
	View       string
	Workers    int
	Effects    bool
}

// Resolve applies flags over c and fills in remaining defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.ModelPath != "" {
		c.ModelPath = flags.ModelPath
	}
	if flags.TextureDir != "" {
		c.TextureDirs = []string{flags.TextureDir}
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Action >= 0 {
		c.Action = flags.Action
	}
	if flags.FirstFrame >= 0 {
		c.FirstFrame = flags.FirstFrame
	}
	if flags.FrameCount > 0 {
		c.FrameCount = flags.FrameCount
	}
	if flags.View != "" {
		c.View = flags.View
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Effects {
		c.KeepEffects = true
	}

	if c.ModelPath != "" {
		dir := filepath.Dir(c.ModelPath)
		if len(c.TextureDirs) == 0 {
			c.TextureDirs = []string{dir}
		}
		if c.OutputDir == "" {
			stem := strings.TrimSuffix(filepath.Base(c.ModelPath), filepath.Ext(c.ModelPath))
			c.OutputDir = filepath.Join(dir, stem+"-frames")
		}
	}

	if c.Action < 0 {
		c.Action = 0
	}
	if c.FirstFrame < 0 {
		c.FirstFrame = 0
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Keys returns the decryption keys described by the config.
func (c *Config) Keys() (crypto.Keys, error) {
	if c.LEAKey == "" {
		return crypto.Keys{}, nil
	}
	key, err := crypto.ParseLEAKey(c.LEAKey)
	if err != nil {
		return crypto.Keys{}, fmt.Errorf("config: %w", err)
	}
	return crypto.Keys{LEA: key, HasLEA: true}, nil
}
