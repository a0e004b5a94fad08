package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"gopkg.in/yaml.v3"
)

const (
	BackendDrive = "drive"
	BackendLocal = "local"

	TranscriberGemini  = "gemini"
	TranscriberWhisper = "whisper"
	TranscriberNone    = "none"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Naming      NamingConfig      `yaml:"naming"`
	Rules       naming.Rules      `yaml:"rules"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	LocalRoot  string `yaml:"local_root"`
	DriveToken string `yaml:"drive_token"`
}

type TranscriberConfig struct {
	Backend string        `yaml:"backend"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Whisper WhisperConfig `yaml:"whisper"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
	Prompt  string   `yaml:"prompt"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	Binary        string `yaml:"binary"`
	FFprobeBinary string `yaml:"ffprobe_binary"`
}

type NamingConfig struct {
	CreatorCodes      []string          `yaml:"creator_codes"`
	DefaultCreator    string            `yaml:"default_creator"`
	StartingSequence  int               `yaml:"starting_sequence"`
	DefaultMultiplier naming.Multiplier `yaml:"default_multiplier"`
	SequenceWidth     int               `yaml:"sequence_width"`
	SequencePrefix    string            `yaml:"sequence_prefix"`
	SafeLabel         string            `yaml:"safe_label"`
	UnsafeLabel       string            `yaml:"unsafe_label"`
	OmitUnsafeLabel   bool              `yaml:"omit_unsafe_label"`
	Extension         string            `yaml:"extension"`
}

// Format returns the filename template settings.
func (n NamingConfig) Format() naming.Format {
	f := naming.Format{
		SequenceWidth:  n.SequenceWidth,
		SequencePrefix: n.SequencePrefix,
		SafeLabel:      n.SafeLabel,
		UnsafeLabel:    n.UnsafeLabel,
		Extension:      n.Extension,
	}
	if n.OmitUnsafeLabel {
		f.UnsafeLabel = ""
	}
	return f
}

// CheckSettings validates per-run settings against the configured creator codes.
// An empty CreatorCodes list accepts any creator.
func (n NamingConfig) CheckSettings(s naming.Settings) error {
	if s.CreatorCode != "" && len(n.CreatorCodes) > 0 && !slices.Contains(n.CreatorCodes, s.CreatorCode) {
		return fmt.Errorf("unknown creator code %q", s.CreatorCode)
	}
	return s.Validate()
}

type PathsConfig struct {
	Temp string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads a YAML config file, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CLIPNAMER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DRIVE_ACCESS_TOKEN"); v != "" {
		c.Storage.DriveToken = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		var keys []string
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		c.Transcriber.Gemini.APIKeys = keys
	}
}

// Settings returns the session naming defaults.
func (c *Config) Settings() naming.Settings {
	return naming.Settings{
		CreatorCode:       c.Naming.DefaultCreator,
		StartingSequence:  c.Naming.StartingSequence,
		DefaultMultiplier: c.Naming.DefaultMultiplier,
	}
}

// ClassifierRules returns the default rules overlaid with configured ones.
func (c *Config) ClassifierRules() naming.Rules {
	return naming.DefaultRules().Merge(c.Rules)
}

func (c *Config) Validate() error {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendDrive
	}
	switch c.Storage.Backend {
	case BackendDrive:
	case BackendLocal:
		if c.Storage.LocalRoot == "" {
			return fmt.Errorf("storage.local_root is required for the local backend")
		}
	default:
		return fmt.Errorf("storage.backend %q is not supported", c.Storage.Backend)
	}

	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = TranscriberNone
	}
	switch c.Transcriber.Backend {
	case TranscriberGemini:
		if len(c.Transcriber.Gemini.APIKeys) == 0 {
			return fmt.Errorf("transcriber.gemini.api_keys is required")
		}
	case TranscriberWhisper:
		if c.Transcriber.Whisper.ModelPath == "" {
			return fmt.Errorf("transcriber.whisper.model_path is required")
		}
		if c.Transcriber.Whisper.BinaryPath == "" {
			return fmt.Errorf("transcriber.whisper.binary_path is required")
		}
	case TranscriberNone:
	default:
		return fmt.Errorf("transcriber.backend %q is not supported", c.Transcriber.Backend)
	}

	if c.Naming.StartingSequence < 0 {
		return fmt.Errorf("naming.starting_sequence must be >= 1")
	}
	if c.Naming.StartingSequence == 0 {
		c.Naming.StartingSequence = 1
	}
	if c.Naming.DefaultMultiplier == "" {
		c.Naming.DefaultMultiplier = naming.MultiplierEvergreen
	}
	if !c.Naming.DefaultMultiplier.Valid() {
		return fmt.Errorf("naming.default_multiplier %q is not a known code", c.Naming.DefaultMultiplier)
	}
	if c.Naming.DefaultCreator == "" && len(c.Naming.CreatorCodes) > 0 {
		c.Naming.DefaultCreator = c.Naming.CreatorCodes[0]
	}

	def := naming.DefaultFormat()
	if c.Naming.SequenceWidth <= 0 {
		c.Naming.SequenceWidth = def.SequenceWidth
	}
	if c.Naming.SafeLabel == "" {
		c.Naming.SafeLabel = def.SafeLabel
	}
	if c.Naming.UnsafeLabel == "" {
		c.Naming.UnsafeLabel = def.UnsafeLabel
	}
	if c.Naming.Extension == "" {
		c.Naming.Extension = def.Extension
	}

	if _, err := naming.NewClassifier(c.ClassifierRules()); err != nil {
		return fmt.Errorf("rules: %w", err)
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Transcriber.Whisper.Threads == 0 {
		c.Transcriber.Whisper.Threads = 8
	}
	if c.Transcriber.Whisper.Language == "" {
		c.Transcriber.Whisper.Language = "en"
	}
	if c.Transcriber.Gemini.Model == "" {
		c.Transcriber.Gemini.Model = "gemini-2.5-flash"
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = "ffprobe"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	return nil
}
