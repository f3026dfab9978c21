package termcolor

import (
	"os"
	"testing"
)

func TestApply(t *testing.T) {
	blue := 4
	cases := []struct {
		name    string
		style   Style
		text    string
		enabled bool
		want    string
	}{
		{"disabled passthrough", Style{Bold: true}, "x", false, "x"},
		{"empty text", Style{Bold: true}, "", true, ""},
		{"no codes", Style{}, "x", true, "x"},
		{"bold", Style{Bold: true}, "x", true, "\x1b[1mx\x1b[0m"},
		{"bold blue", Style{Bold: true, FGBasic: &blue}, "f.php", true, "\x1b[1;34mf.php\x1b[0m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Apply(tc.style, tc.text, tc.enabled); got != tc.want {
				t.Errorf("Apply = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for raw, want := range map[string]ColorMode{
		"":       ModeAuto,
		"auto":   ModeAuto,
		"always": ModeAlways,
		"NEVER":  ModeNever,
	} {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
	if _, err := ParseMode("rainbow"); err == nil {
		t.Errorf("ParseMode(rainbow): err = nil, want error")
	}
}

func TestDetectModeEnvPriority(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"dumb wins over force", map[string]string{"TERM": "dumb", "FORCE_COLOR": "1"}, ModeNever},
		{"NO_COLOR disables", map[string]string{"NO_COLOR": "1"}, ModeNever},
		{"CLICOLOR zero disables", map[string]string{"CLICOLOR": "0"}, ModeNever},
		{"CLICOLOR_FORCE enables", map[string]string{"CLICOLOR_FORCE": "1"}, ModeAlways},
		{"FORCE_COLOR enables", map[string]string{"FORCE_COLOR": "yes"}, ModeAlways},
		{"FORCE_COLOR zero is off", map[string]string{"FORCE_COLOR": "0"}, ModeNever},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectMode(os.Stdout, tc.env); got != tc.want {
				t.Errorf("DetectMode = %v, want %v", got, tc.want)
			}
		})
	}
	if got := DetectMode(nil, nil); got != ModeNever {
		t.Errorf("nil stdout must disable colors, got %v", got)
	}
}

func TestDetectProfile(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want Profile
	}{
		{map[string]string{"COLORTERM": "truecolor"}, ProfileTrueColor},
		{map[string]string{"COLORTERM": "24bit"}, ProfileTrueColor},
		{map[string]string{"TERM": "xterm-256color"}, ProfileANSI256},
		{map[string]string{"TERM": "vt100"}, ProfileBasic8},
		{nil, ProfileBasic8},
	}
	for _, tc := range cases {
		if got := DetectProfile(tc.env); got != tc.want {
			t.Errorf("DetectProfile(%v) = %v, want %v", tc.env, got, tc.want)
		}
	}
}

func TestDetectScheme(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want Scheme
	}{
		{map[string]string{"COLORFGBG": "0;15"}, SchemeLight},
		{map[string]string{"COLORFGBG": "15;0"}, SchemeDark},
		{map[string]string{"TERM": "xterm-light"}, SchemeLight},
		{nil, SchemeDark},
		{map[string]string{}, SchemeDark},
	}
	for _, tc := range cases {
		if got := DetectScheme(tc.env); got != tc.want {
			t.Errorf("DetectScheme(%v) = %v, want %v", tc.env, got, tc.want)
		}
	}
}

func TestMatchStyleProfiles(t *testing.T) {
	if s := MatchStyle(ProfileBasic8, SchemeDark); s.FGBasic == nil || *s.FGBasic != 1 {
		t.Errorf("basic profile should fall back to red")
	}
	if s := MatchStyle(ProfileANSI256, SchemeDark); s.FG256 == nil {
		t.Errorf("256 profile should carry a palette index")
	}
	if s := MatchStyle(ProfileTrueColor, SchemeLight); s.FGTrue == nil {
		t.Errorf("truecolor profile should carry an RGB triple")
	}
}
