package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/phyten/phrep/internal/model"
	"github.com/phyten/phrep/internal/util"
	"github.com/phyten/phrep/internal/walker"
)

// Run は指定されたオプションに従ってディレクトリツリーを走査し、
// 検索結果とメタデータを返します。
//
// パターンが正規表現としてコンパイルできない場合のみ全体エラーに
// なります。読めないファイルはスキップされ、そのエラー情報は
// Result.Errors に集約されます。出力順はファイル発見順で決定的です。
func Run(opts Options) (*Result, error) {
	start := time.Now()

	pat, err := regexp.Compile(opts.Query)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	mode, err := ParseSearchMode(opts.Mode)
	if err != nil {
		return nil, err
	}

	files, err := walker.Walk(walker.Options{
		Root:           opts.Dir,
		NameFilter:     opts.FilePattern,
		Includes:       opts.Includes,
		Excludes:       opts.Excludes,
		ExcludeTypical: opts.ExcludeTypical,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Mode:         mode,
		HasBody:      opts.PrintBody || mode == model.ModeMethod,
		FilesScanned: len(files),
	}
	if len(files) == 0 {
		res.ElapsedMS = msSince(start)
		return res, nil
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	prog := util.NewProgress(len(files), opts.Progress)

	// Results are written by input index so the final order follows
	// discovery order, not completion order.
	perFile := make([][]model.Match, len(files))
	var mu sync.Mutex
	var errs []ItemError
	unterminated := 0

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, rel := range files {
		i, rel := i, rel
		g.Go(func() error {
			defer prog.Advance()
			data, err := os.ReadFile(filepath.Join(opts.Dir, rel))
			if err != nil {
				mu.Lock()
				errs = append(errs, newItemError(rel, "read", err))
				mu.Unlock()
				return nil
			}
			if bytes.IndexByte(data, 0) >= 0 {
				// binary
				return nil
			}
			if opts.MaxFileBytes > 0 && len(data) > opts.MaxFileBytes {
				return nil
			}
			items, diag := Process(rel, data, pat, mode, opts.PrintBody)
			perFile[i] = items
			if diag.Unterminated {
				mu.Lock()
				unterminated++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	prog.Done()

	for _, items := range perFile {
		res.Items = append(res.Items, items...)
	}
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	res.Total = len(res.Items)
	res.Unterminated = unterminated
	res.Errors = errs
	res.ErrorCount = len(errs)
	res.ElapsedMS = msSince(start)
	return res, nil
}

// ParseSearchMode maps the CLI mode selector onto the model constant.
func ParseSearchMode(raw string) (model.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "basic":
		return model.ModeBasic, nil
	case "grep":
		return model.ModeGrep, nil
	case "method", "method-search":
		return model.ModeMethod, nil
	default:
		return "", fmt.Errorf("invalid --mode: %s", raw)
	}
}

func newItemError(file, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
