package output

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/phyten/phrep/internal/model"
)

var sampleMatches = []model.Match{
	{
		File:     "app/Repo/UserRepo.php",
		Line:     42,
		Text:     `        $q = "INSERT, UPDATE"; // save`,
		Mode:     model.ModeBasic,
		Function: "save",
	},
	{
		File:      "app/Service/Sync.php",
		Line:      7,
		Text:      "    public function run(): void {",
		Mode:      model.ModeMethod,
		Function:  "run",
		Signature: "public function run(): void",
		Body:      "{\n    $this->push();\n}",
	},
}

func TestResolveFieldsDefaults(t *testing.T) {
	sel, err := ResolveFields("", false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	want := []string{"FILE", "LINE", "FUNCTION", "TEXT"}
	if !reflect.DeepEqual(Headers(sel.Fields), want) {
		t.Fatalf("default headers = %v, want %v", Headers(sel.Fields), want)
	}
	if sel.ShowBody {
		t.Fatal("body must not be selected by default")
	}

	sel, err = ResolveFields("", true)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	if !sel.ShowBody || Headers(sel.Fields)[len(sel.Fields)-1] != "BODY" {
		t.Fatal("body column expected when bodies were requested")
	}
}

func TestResolveFieldsExplicit(t *testing.T) {
	sel, err := ResolveFields(" file , Function ,signature", false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	want := []string{"FILE", "FUNCTION", "SIGNATURE"}
	if !reflect.DeepEqual(Headers(sel.Fields), want) {
		t.Fatalf("headers = %v, want %v", Headers(sel.Fields), want)
	}

	if _, err := ResolveFields("file,,line", false); err == nil {
		t.Fatal("expected error for empty entry")
	}
	if _, err := ResolveFields("file,owner", false); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestRowValues(t *testing.T) {
	sel, err := ResolveFields("file,line,function,body", false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	got := RowValues(sampleMatches[1], sel.Fields)
	want := []string{"app/Service/Sync.php", "7", "run", "{\n    $this->push();\n}"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RowValues = %v, want %v", got, want)
	}
}

func TestWriteCSV(t *testing.T) {
	sel, err := ResolveFields("file,line,function,text", false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleMatches, sel); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "\r\n") {
		t.Fatal("CSV output should use CRLF line endings")
	}
	if !strings.HasPrefix(got, "FILE,LINE,FUNCTION,TEXT\r\n") {
		t.Fatalf("missing header row: %q", got)
	}
	// The comma inside the match text forces quoting.
	if !strings.Contains(got, `"        $q = ""INSERT, UPDATE""; // save"`) {
		t.Fatalf("text field not quoted correctly: %q", got)
	}
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, sampleMatches); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != len(sampleMatches) {
		t.Fatalf("expected %d lines, got %d", len(sampleMatches), len(lines))
	}
	for i, line := range lines {
		var m model.Match
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if m.File != sampleMatches[i].File || m.Line != sampleMatches[i].Line {
			t.Fatalf("line %d round-trip mismatch: %+v", i, m)
		}
	}
	if strings.Contains(output, "\\u003c") {
		t.Fatal("HTML characters should not be escaped in NDJSON output")
	}
}

func TestWriteMarkdownTable(t *testing.T) {
	sel, err := ResolveFields("function,body", false)
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteMarkdownTable(&buf, sampleMatches, sel); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	output := buf.String()
	if !strings.HasPrefix(output, "| FUNCTION | BODY |\n| --- | --- |\n") {
		t.Fatalf("missing table header: %q", output)
	}
	if !strings.Contains(output, "{<br>    $this->push();<br>}") {
		t.Fatal("expected newline conversion to <br> in markdown output")
	}
}
