package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/phrep/internal/engine/opts"
)

// CanonicalizeColor は color 設定を auto/always/never に正規化します。
func CanonicalizeColor(raw string) (string, error) {
	color := strings.ToLower(strings.TrimSpace(raw))
	if color == "" {
		return "auto", nil
	}
	switch color {
	case "auto", "always", "never":
		return color, nil
	case "on", "force":
		return "always", nil
	case "off", "none":
		return "never", nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func ValidateTruncate(n int) error {
	if n < 0 {
		return fmt.Errorf("truncate must be >= 0")
	}
	return nil
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	if err := ValidateTruncate(values.Truncate); err != nil {
		return values, err
	}
	return values, nil
}
