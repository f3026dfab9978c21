package config

import (
	"strings"

	"github.com/phyten/phrep/internal/engine"
)

// EngineConfig は設定ファイル・環境変数から読み込んだ検索エンジン設定です。
// ポインタ型なのは「未指定」と「ゼロ値指定」を区別するためです。
type EngineConfig struct {
	Mode           *string   `yaml:"mode" toml:"mode" json:"mode"`
	Dir            *string   `yaml:"dir" toml:"dir" json:"dir"`
	FilePattern    *string   `yaml:"file" toml:"file" json:"file"`
	Includes       *[]string `yaml:"include" toml:"include" json:"include"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	Body           *bool     `yaml:"body" toml:"body" json:"body"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
}

// UIConfig は表示まわりの設定です。
type UIConfig struct {
	Output   *string `yaml:"output" toml:"output" json:"output"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	Truncate *int    `yaml:"truncate" toml:"truncate" json:"truncate"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

// EngineSettings はマージ済みの確定値です。
type EngineSettings struct {
	Mode           string
	Dir            string
	FilePattern    string
	Includes       []string
	Excludes       []string
	ExcludeTypical bool
	Body           bool
	Jobs           int
	MaxFileBytes   int
}

type UISettings struct {
	Output   string
	Color    string
	Truncate int
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Mode:           opts.Mode,
		Dir:            opts.Dir,
		FilePattern:    opts.FilePattern,
		Includes:       cloneStrings(opts.Includes),
		Excludes:       cloneStrings(opts.Excludes),
		ExcludeTypical: opts.ExcludeTypical,
		Body:           opts.PrintBody,
		Jobs:           opts.Jobs,
		MaxFileBytes:   opts.MaxFileBytes,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Mode = s.Mode
	if trimmed := strings.TrimSpace(s.Dir); trimmed != "" {
		opts.Dir = trimmed
	}
	opts.FilePattern = s.FilePattern
	opts.Includes = cloneStrings(s.Includes)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.PrintBody = s.Body
	opts.Jobs = s.Jobs
	opts.MaxFileBytes = s.MaxFileBytes
}

func DefaultUISettings() UISettings {
	return UISettings{
		Output:   "text",
		Color:    "auto",
		Truncate: 0,
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
