package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/phyten/phrep/internal/engine"
	"github.com/phyten/phrep/internal/model"
	"github.com/phyten/phrep/internal/output"
	"github.com/phyten/phrep/internal/pathutil"
	"github.com/phyten/phrep/internal/termcolor"
	"github.com/phyten/phrep/internal/textutil"
)

type renderContext struct {
	w        io.Writer
	colors   bool
	dir      string
	home     string
	truncate int

	pathStyle  termcolor.Style
	funcStyle  termcolor.Style
	lineStyle  termcolor.Style
	sigStyle   termcolor.Style
	matchStyle termcolor.Style
}

func newRenderContext(w io.Writer, mode termcolor.ColorMode, dir string, truncate int) *renderContext {
	env := termcolor.EnvMap(os.Environ())
	home, _ := os.UserHomeDir()
	return &renderContext{
		w:          w,
		colors:     termcolor.Enabled(mode, os.Stdout),
		dir:        dir,
		home:       home,
		truncate:   truncate,
		pathStyle:  termcolor.PathStyle(),
		funcStyle:  termcolor.FuncStyle(),
		lineStyle:  termcolor.LineNoStyle(),
		sigStyle:   termcolor.SignatureStyle(),
		matchStyle: termcolor.MatchStyle(termcolor.DetectProfile(env), termcolor.DetectScheme(env)),
	}
}

func (rc *renderContext) displayPath(rel string) string {
	p := rel
	if rc.dir != "" && rc.dir != "." {
		p = filepath.Join(rc.dir, rel)
	}
	return pathutil.Display(p, rc.home)
}

func (rc *renderContext) style(s termcolor.Style, text string) string {
	return termcolor.Apply(s, text, rc.colors)
}

func (rc *renderContext) clip(s string) string {
	if rc.truncate <= 0 {
		return s
	}
	return textutil.TruncateByWidth(s, rc.truncate, "…")
}

// highlight returns the trimmed match line with the matched span
// styled. Truncated lines are left unstyled so the cut never lands
// inside an escape sequence.
func (rc *renderContext) highlight(m model.Match) string {
	text := strings.TrimSpace(m.Text)
	clipped := rc.clip(text)
	if !rc.colors || clipped != text {
		return clipped
	}
	shift := strings.Index(m.Text, text)
	start := m.Span.StartCol - shift
	end := m.Span.EndCol - shift
	if start < 0 || end > len(text) || start >= end {
		return text
	}
	return text[:start] + rc.style(rc.matchStyle, text[start:end]) + text[end:]
}

// renderText prints one line per match:
//
//	path: func():line → text
//
// Method mode prints the signature and the full body instead.
func renderText(rc *renderContext, res *engine.Result) error {
	for i, m := range res.Items {
		if res.Mode == model.ModeMethod {
			if err := renderMethodMatch(rc, m, i > 0); err != nil {
				return err
			}
			continue
		}
		head := rc.style(rc.pathStyle, rc.displayPath(m.File))
		if m.Function != "" {
			head += ": " + rc.style(rc.funcStyle, m.Function+"()")
		}
		head += ":" + rc.style(rc.lineStyle, strconv.Itoa(m.Line))
		if _, err := fmt.Fprintf(rc.w, "%s → %s\n", head, rc.highlight(m)); err != nil {
			return err
		}
		if m.Body != "" {
			if _, err := fmt.Fprintln(rc.w, m.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderMethodMatch(rc *renderContext, m model.Match, sep bool) error {
	if sep {
		if _, err := fmt.Fprintln(rc.w); err != nil {
			return err
		}
	}
	head := fmt.Sprintf("%s: %s:%s",
		rc.style(rc.pathStyle, rc.displayPath(m.File)),
		rc.style(rc.funcStyle, m.Function+"()"),
		rc.style(rc.lineStyle, strconv.Itoa(m.Line)))
	if _, err := fmt.Fprintln(rc.w, head); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(rc.w, rc.style(rc.sigStyle, m.Signature)); err != nil {
		return err
	}
	if m.NoBody {
		_, err := fmt.Fprintln(rc.w, "(no body)")
		return err
	}
	_, err := fmt.Fprintln(rc.w, m.Body)
	return err
}

// renderTable prints an aligned table (or raw TSV with tsv=true) with
// the selected columns.
func renderTable(rc *renderContext, res *engine.Result, sel output.FieldSelection, tsv bool) error {
	var w io.Writer = rc.w
	var tab *tabwriter.Writer
	if !tsv {
		tab = tabwriter.NewWriter(rc.w, 2, 4, 2, ' ', 0)
		w = tab
	}
	fmt.Fprintln(w, strings.Join(output.Headers(sel.Fields), "\t"))
	for _, m := range res.Items {
		row := output.RowValues(m, sel.Fields)
		for i, f := range sel.Fields {
			row[i] = flattenCell(row[i])
			if f.Key == "text" || f.Key == "body" {
				row[i] = rc.clip(row[i])
			}
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if tab != nil {
		return tab.Flush()
	}
	return nil
}

// flattenCell keeps multi-line values from breaking row alignment.
func flattenCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\t", " ")
	return s
}

func writeJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
