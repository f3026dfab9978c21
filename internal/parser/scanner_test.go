package parser

import (
	"testing"
)

func scanAll(t *testing.T, src string) ([]Event, *Scanner) {
	t.Helper()
	sc := NewScanner([]byte(src))
	var evs []Event
	for {
		ev, ok := sc.Next()
		if !ok {
			break
		}
		evs = append(evs, ev)
	}
	if len(evs) != len(src) {
		t.Fatalf("event count = %d, want %d", len(evs), len(src))
	}
	return evs, sc
}

func stateAt(evs []Event, offset int) LexState {
	return evs[offset].State
}

func TestScannerClassifiesStringsAndComments(t *testing.T) {
	src := `$a = 'x'; // note
$b = "y"; # hash
/* block */ $c = 1;`
	evs, sc := scanAll(t, src)

	cases := []struct {
		name   string
		offset int
		want   LexState
	}{
		{"code assignment", 0, StateCode},
		{"inside single quotes", 6, StateSingleQuote},
		{"closing single quote", 7, StateSingleQuote},
		{"after string", 8, StateCode},
		{"slash-slash comment", 10, StateLineComment},
		{"comment text", 14, StateLineComment},
		{"inside double quotes", 25, StateDoubleQuote},
		{"hash comment", 29, StateLineComment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stateAt(evs, tc.offset); got != tc.want {
				t.Errorf("state at %d (%q) = %v, want %v", tc.offset, src[tc.offset], got, tc.want)
			}
		})
	}
	if sc.Unterminated() {
		t.Errorf("Unterminated() = true for well-formed input")
	}
}

func TestScannerLineCommentEndsAtNewline(t *testing.T) {
	src := "// c\n$x;"
	evs, _ := scanAll(t, src)
	if got := stateAt(evs, 3); got != StateLineComment {
		t.Errorf("comment byte state = %v, want line comment", got)
	}
	// The newline itself returns to code.
	if got := stateAt(evs, 4); got != StateCode {
		t.Errorf("newline state = %v, want code", got)
	}
	if got := stateAt(evs, 5); got != StateCode {
		t.Errorf("after comment state = %v, want code", got)
	}
}

func TestScannerBlockCommentOpenerStarCannotClose(t *testing.T) {
	// "/*/" must stay open; only the later "*/" ends the comment.
	src := "/*/ x */$y;"
	evs, _ := scanAll(t, src)
	if got := stateAt(evs, 3); got != StateBlockComment {
		t.Errorf("state after /*/ = %v, want block comment", got)
	}
	if got := stateAt(evs, 8); got != StateCode {
		t.Errorf("state after */ = %v, want code", got)
	}
}

func TestScannerStringEscapes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		// offset expected to be back in code state
		codeAt int
	}{
		{"escaped single quote", `'a\'b'; `, 6},
		{"escaped backslash", `'a\\'; `, 5},
		{"escaped double quote", `"a\"b"; `, 6},
		{"double backslash then close", `"a\\"; `, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evs, _ := scanAll(t, tc.src)
			if got := stateAt(evs, tc.codeAt); got != StateCode {
				t.Errorf("state at %d = %v, want code", tc.codeAt, got)
			}
			if got := stateAt(evs, tc.codeAt-1); got == StateCode {
				t.Errorf("state at %d = code, want string", tc.codeAt-1)
			}
		})
	}
}

func TestScannerBracesSuppressedOutsideCode(t *testing.T) {
	src := `{ "{" '{' // {
/* { { */ }`
	evs, _ := scanAll(t, src)
	last := evs[len(evs)-1]
	if last.Depth != 0 {
		t.Errorf("final depth = %d, want 0 (braces in strings/comments must not count)", last.Depth)
	}
	if evs[0].Depth != 1 {
		t.Errorf("depth after first brace = %d, want 1", evs[0].Depth)
	}
}

func TestScannerDepthTracksNesting(t *testing.T) {
	src := "{ { } }"
	evs, _ := scanAll(t, src)
	wantDepths := []int{1, 1, 2, 2, 1, 1, 0}
	for i, want := range wantDepths {
		if evs[i].Depth != want {
			t.Errorf("depth at %d = %d, want %d", i, evs[i].Depth, want)
		}
	}
}

func TestScannerUnterminatedClosesAtEOF(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"string", `$x = "never closed`},
		{"single quote", `$x = 'open`},
		{"block comment", `/* open`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, sc := scanAll(t, tc.src)
			if !sc.Unterminated() {
				t.Errorf("Unterminated() = false, want true")
			}
		})
	}
}

func TestScannerPositions(t *testing.T) {
	src := "a\nbc"
	evs, _ := scanAll(t, src)
	want := []Position{
		{Offset: 0, Line: 1, Col: 0},
		{Offset: 1, Line: 1, Col: 1},
		{Offset: 2, Line: 2, Col: 0},
		{Offset: 3, Line: 2, Col: 1},
	}
	for i, w := range want {
		if evs[i].Pos != w {
			t.Errorf("pos[%d] = %+v, want %+v", i, evs[i].Pos, w)
		}
	}
}
