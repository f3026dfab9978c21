package config

import "strings"

// MergeEngine はレイヤーを順に適用します。後勝ちです
// (defaults < file < env < flags の順で呼び出す想定)。
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Mode = ResolveString(out.Mode, layer.Mode)
		out.Dir = ResolveString(out.Dir, layer.Dir)
		out.FilePattern = ResolveString(out.FilePattern, layer.FilePattern)
		out.Includes = ResolveStrings(out.Includes, layer.Includes)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.ExcludeTypical = ResolveBool(out.ExcludeTypical, layer.ExcludeTypical)
		out.Body = ResolveBool(out.Body, layer.Body)
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.MaxFileBytes = ResolveInt(out.MaxFileBytes, layer.MaxFileBytes)
	}
	if strings.TrimSpace(out.Dir) == "" {
		out.Dir = "."
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Truncate = ResolveInt(out.Truncate, layer.Truncate)
	}
	if out.Output == "" {
		out.Output = "text"
	}
	if out.Color == "" {
		out.Color = "auto"
	}
	return out
}
