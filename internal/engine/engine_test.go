package engine

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/phyten/phrep/internal/model"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRunWalksTreeDeterministically(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.php":     "<?php\nfunction beta(){ return 1; } // target\n",
		"a.php":     "<?php\nfunction alpha(){ return 2; } // target\n",
		"sub/c.php": "<?php\nfunction gamma(){ return 3; } // target\n",
		"notes.txt": "target but not php\n",
	})

	opts := Options{Query: "target", Mode: "grep", Dir: root, Jobs: 4}
	var first []string
	for run := 0; run < 3; run++ {
		res, err := Run(opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.FilesScanned != 3 {
			t.Fatalf("FilesScanned = %d, want 3", res.FilesScanned)
		}
		var files []string
		for _, m := range res.Items {
			files = append(files, m.File)
		}
		want := []string{"a.php", "b.php", "sub/c.php"}
		if !reflect.DeepEqual(files, want) {
			t.Fatalf("run %d: order = %v, want %v", run, files, want)
		}
		if first == nil {
			first = files
		} else if !reflect.DeepEqual(files, first) {
			t.Fatalf("run %d: order differs between runs", run)
		}
	}
}

func TestRunInvalidPatternIsFatal(t *testing.T) {
	root := writeTree(t, map[string]string{"a.php": "<?php\n"})
	_, err := Run(Options{Query: "([unclosed", Mode: "grep", Dir: root})
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestRunMethodMode(t *testing.T) {
	root := writeTree(t, map[string]string{
		"repo.php": "<?php\nclass R {\n  public function save(){ return 1; }\n  public function load(){ return 2; }\n}\n",
	})
	res, err := Run(Options{Query: "save", Mode: "method", Dir: root, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasBody {
		t.Errorf("method mode must report HasBody")
	}
	if res.Total != 1 || res.Items[0].Function != "save" {
		t.Fatalf("Items = %+v, want exactly save()", res.Items)
	}
}

func TestRunSkipsBinaryAndOversized(t *testing.T) {
	root := writeTree(t, map[string]string{
		"ok.php":  "<?php // needle\n",
		"big.php": "<?php // needle padding padding padding padding padding\n",
	})
	if err := os.WriteFile(filepath.Join(root, "bin.php"), []byte("<?php\x00needle"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Options{Query: "needle", Mode: "grep", Dir: root, MaxFileBytes: 20, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Items[0].File != "ok.php" {
		t.Fatalf("Items = %+v, want only ok.php", res.Items)
	}
}

func TestRunCollectsReadErrors(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	root := writeTree(t, map[string]string{
		"ok.php":  "<?php // needle\n",
		"sec.php": "<?php // needle\n",
	})
	if err := os.Chmod(filepath.Join(root, "sec.php"), 0o000); err != nil {
		t.Fatal(err)
	}

	res, err := Run(Options{Query: "needle", Mode: "grep", Dir: root, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 {
		t.Fatalf("Total = %d, want 1 (unreadable file skipped)", res.Total)
	}
	if res.ErrorCount != 1 || res.Errors[0].File != "sec.php" || res.Errors[0].Stage != "read" {
		t.Fatalf("Errors = %+v, want one read error for sec.php", res.Errors)
	}
}

func TestRunCountsUnterminated(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.php": "<?php\nfunction f(){ \"needle\n",
		"ok.php":  "<?php // needle\n",
	})
	res, err := Run(Options{Query: "needle", Mode: "basic", Dir: root, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Unterminated != 1 {
		t.Errorf("Unterminated = %d, want 1", res.Unterminated)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2 (malformed file still searched)", res.Total)
	}

	// The grep fast path never scans for boundaries, so it reports no
	// unterminated constructs either.
	res, err = Run(Options{Query: "needle", Mode: "grep", Dir: root, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Unterminated != 0 {
		t.Errorf("grep mode Unterminated = %d, want 0", res.Unterminated)
	}
}

func TestRunEmptyTree(t *testing.T) {
	res, err := Run(Options{Query: "x", Mode: "basic", Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesScanned != 0 || res.Total != 0 {
		t.Errorf("empty tree: FilesScanned=%d Total=%d, want 0/0", res.FilesScanned, res.Total)
	}
}

func TestParseSearchMode(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Mode
		wantErr bool
	}{
		{"", model.ModeBasic, false},
		{"basic", model.ModeBasic, false},
		{"grep", model.ModeGrep, false},
		{"method", model.ModeMethod, false},
		{"method-search", model.ModeMethod, false},
		{"  Method ", model.ModeMethod, false},
		{"fuzzy", "", true},
	}
	for _, tc := range cases {
		got, err := ParseSearchMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseSearchMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSearchMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSearchMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
