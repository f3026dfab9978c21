package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/phrep/internal/engine/opts"
)

// FromEnv は PHREP_* 環境変数から設定レイヤーを構築します。
// getenv を注入できるのはテストのためです。
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setString(&cfg.Engine.Mode, "PHREP_MODE")
	setString(&cfg.Engine.Dir, "PHREP_DIR")
	setString(&cfg.Engine.FilePattern, "PHREP_FILE")
	setList(&cfg.Engine.Includes, "PHREP_INCLUDE")
	setList(&cfg.Engine.Excludes, "PHREP_EXCLUDE")
	setBool(&cfg.Engine.ExcludeTypical, "PHREP_EXCLUDE_TYPICAL")
	setBool(&cfg.Engine.Body, "PHREP_BODY")
	setInt(&cfg.Engine.MaxFileBytes, "PHREP_MAX_FILE_BYTES", 0, math.MaxInt)
	// Allow large values here and rely on NormalizeAndValidate to enforce the
	// canonical upper bound so every input path shares the same error message.
	setInt(&cfg.Engine.Jobs, "PHREP_JOBS", 0, math.MaxInt)

	setString(&cfg.UI.Output, "PHREP_OUTPUT")
	setString(&cfg.UI.Color, "PHREP_COLOR")
	setInt(&cfg.UI.Truncate, "PHREP_TRUNCATE", 0, math.MaxInt)

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
