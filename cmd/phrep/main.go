package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phyten/phrep/internal/config"
	"github.com/phyten/phrep/internal/engine"
	engineopts "github.com/phyten/phrep/internal/engine/opts"
	"github.com/phyten/phrep/internal/output"
	"github.com/phyten/phrep/internal/termcolor"
	"github.com/phyten/phrep/internal/util"
)

// 終了コードは grep 互換:
//
//	0 = ヒットあり
//	1 = ヒットなし
//	2 = 使い方エラーまたは実行時エラー
const (
	exitMatched   = 0
	exitNoMatches = 1
	exitFailure   = 2
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("phrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: phrep [flags] QUERY\n\n")
		fmt.Fprintf(stderr, "Boundary-aware search for PHP sources. QUERY is a Go regular expression.\n\n")
		fs.PrintDefaults()
	}

	var (
		mode      = fs.String("mode", "", "basic|grep|method (default basic)")
		dir       = fs.String("dir", "", "directory to search (default: current dir)")
		filePat   = fs.String("file", "", "only search files whose name contains this substring")
		body      = fs.Bool("body", false, "print the whole function body once per matched function (basic mode)")
		jobs      = fs.Int("jobs", 0, "max parallel workers")
		maxBytes  = fs.Int("max-file-bytes", 0, "skip files larger than N bytes (0=unlimited)")
		noTypical = fs.Bool("no-exclude-typical", false, "search vendor/, node_modules/ and friends too")
		outFmt    = fs.String("output", "", "text|table|tsv|json|ndjson|csv|markdown")
		color     = fs.String("color", "", "auto|always|never")
		fields    = fs.String("fields", "", "comma-separated columns for csv/tsv/table/markdown")
		truncate  = fs.Int("truncate", -1, "truncate match text to N display columns (0=unlimited)")
		noProg    = fs.Bool("no-progress", false, "disable progress output")
		forceProg = fs.Bool("progress", false, "force progress even when piped")
		cfgPath   = fs.String("config", "", "explicit config file path")
		noConfig  = fs.Bool("no-config", false, "skip config file discovery")
		showVer   = fs.Bool("version", false, "print version and exit")
	)
	var includes, excludes stringList
	fs.Var(&includes, "include", "doublestar glob to add files (repeatable, comma-separated ok)")
	fs.Var(&excludes, "exclude", "doublestar glob to drop files (repeatable, comma-separated ok)")

	if err := fs.Parse(args); err != nil {
		return exitFailure
	}
	if *showVer {
		fmt.Fprintf(stdout, "phrep %s\n", version)
		return exitMatched
	}
	if fs.NArg() != 1 {
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "phrep: query cannot be empty")
		} else {
			fmt.Fprintf(stderr, "phrep: unexpected extra arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		}
		fs.Usage()
		return exitFailure
	}
	query := fs.Arg(0)

	base := config.EngineSettingsFromOptions(engineopts.Defaults())
	baseUI := config.DefaultUISettings()

	var layers []config.EngineConfig
	var uiLayers []config.UIConfig

	if !*noConfig {
		searchDir := strings.TrimSpace(*dir)
		if searchDir == "" {
			searchDir = "."
		}
		explicit := strings.TrimSpace(*cfgPath)
		if explicit == "" {
			explicit = os.Getenv("PHREP_CONFIG")
		}
		path, _, err := config.Find(searchDir, explicit, os.Getenv("XDG_CONFIG_HOME"), "")
		if err != nil {
			fmt.Fprintf(stderr, "phrep: %v\n", err)
			return exitFailure
		}
		if path != "" {
			fileCfg, err := config.Load(path)
			if err != nil {
				fmt.Fprintf(stderr, "phrep: %v\n", err)
				return exitFailure
			}
			layers = append(layers, fileCfg.Engine)
			uiLayers = append(uiLayers, fileCfg.UI)
		}
	}

	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "phrep: %v\n", err)
		return exitFailure
	}
	layers = append(layers, envCfg.Engine)
	uiLayers = append(uiLayers, envCfg.UI)

	flagCfg, flagUI := flagLayer(fs, *mode, *dir, *filePat, includes, excludes, *noTypical, *body, *jobs, *maxBytes, *outFmt, *color, *truncate)
	layers = append(layers, flagCfg)
	uiLayers = append(uiLayers, flagUI)

	settings := config.MergeEngine(base, layers...)
	ui, err := config.NormalizeUI(config.MergeUI(baseUI, uiLayers...))
	if err != nil {
		fmt.Fprintf(stderr, "phrep: %v\n", err)
		return exitFailure
	}

	opts := engineopts.Defaults()
	settings.ApplyToOptions(&opts)
	opts.Query = query
	if opts.Mode == "method-search" {
		opts.Mode = "method"
	}
	opts.Progress = util.ShouldShowProgress(*forceProg, *noProg)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		fmt.Fprintf(stderr, "phrep: %v\n", err)
		return exitFailure
	}

	res, err := engine.Run(opts)
	if err != nil {
		fmt.Fprintf(stderr, "phrep: %v\n", err)
		return exitFailure
	}

	colorMode, err := termcolor.ParseMode(ui.Color)
	if err != nil {
		fmt.Fprintf(stderr, "phrep: %v\n", err)
		return exitFailure
	}
	rctx := newRenderContext(stdout, colorMode, opts.Dir, ui.Truncate)

	switch ui.Output {
	case "json":
		err = writeJSON(stdout, res)
	case "ndjson":
		err = output.WriteNDJSON(stdout, res.Items)
	case "csv":
		err = withFields(*fields, res, func(sel output.FieldSelection) error {
			return output.WriteCSV(stdout, res.Items, sel)
		})
	case "markdown":
		err = withFields(*fields, res, func(sel output.FieldSelection) error {
			return output.WriteMarkdownTable(stdout, res.Items, sel)
		})
	case "table":
		err = withFields(*fields, res, func(sel output.FieldSelection) error {
			return renderTable(rctx, res, sel, false)
		})
	case "tsv":
		err = withFields(*fields, res, func(sel output.FieldSelection) error {
			return renderTable(rctx, res, sel, true)
		})
	default: // text
		err = renderText(rctx, res)
	}
	if err != nil {
		fmt.Fprintf(stderr, "phrep: %v\n", err)
		return exitFailure
	}

	for _, ie := range res.Errors {
		fmt.Fprintf(stderr, "phrep: %s: %s: %s\n", ie.File, ie.Stage, ie.Message)
	}
	if res.Unterminated > 0 {
		fmt.Fprintf(stderr, "phrep: warning: %d file(s) with unterminated strings or comments\n", res.Unterminated)
	}

	if res.Total == 0 {
		return exitNoMatches
	}
	return exitMatched
}

// flagLayer builds the highest-precedence config layer from flags the
// user actually set. Unset flags stay nil so lower layers win.
func flagLayer(fs *flag.FlagSet, mode, dir, filePat string, includes, excludes stringList, noTypical, body bool, jobs, maxBytes int, outFmt, color string, truncate int) (config.EngineConfig, config.UIConfig) {
	var eng config.EngineConfig
	var ui config.UIConfig
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			eng.Mode = &mode
		case "dir":
			eng.Dir = &dir
		case "file":
			eng.FilePattern = &filePat
		case "include":
			list := engineopts.SplitMulti(includes)
			eng.Includes = &list
		case "exclude":
			list := engineopts.SplitMulti(excludes)
			eng.Excludes = &list
		case "no-exclude-typical":
			v := !noTypical
			eng.ExcludeTypical = &v
		case "body":
			eng.Body = &body
		case "jobs":
			eng.Jobs = &jobs
		case "max-file-bytes":
			eng.MaxFileBytes = &maxBytes
		case "output":
			ui.Output = &outFmt
		case "color":
			ui.Color = &color
		case "truncate":
			ui.Truncate = &truncate
		}
	})
	return eng, ui
}

func withFields(raw string, res *engine.Result, write func(output.FieldSelection) error) error {
	sel, err := output.ResolveFields(raw, res.HasBody)
	if err != nil {
		return err
	}
	return write(sel)
}
