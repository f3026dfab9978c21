package engine

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"github.com/phyten/phrep/internal/model"
	"github.com/phyten/phrep/internal/parser"
)

// ScanDiag carries the per-file diagnostics of one Process call.
type ScanDiag struct {
	Unterminated bool
}

// Process runs one file through the scan/extract/match pipeline and
// returns its matches in line order. It is a pure function of its
// arguments: no shared state, safe for concurrent use across files,
// and running it twice yields identical output.
//
// Grep mode is the fast path: it never invokes the extractor.
func Process(path string, data []byte, pat *regexp.Regexp, mode model.Mode, printBody bool) ([]model.Match, ScanDiag) {
	switch mode {
	case model.ModeGrep:
		return matchGrep(path, data, pat), ScanDiag{}
	case model.ModeMethod:
		recs, info := parser.Extract(data)
		return matchMethod(path, data, pat, recs), ScanDiag{Unterminated: info.Unterminated}
	default:
		recs, info := parser.Extract(data)
		return matchBasic(path, data, pat, recs, printBody), ScanDiag{Unterminated: info.Unterminated}
	}
}

// matchGrep is a plain line scan with no function context.
func matchGrep(path string, data []byte, pat *regexp.Regexp) []model.Match {
	var out []model.Match
	forEachLine(data, func(n, start int, line []byte) {
		loc := pat.FindIndex(line)
		if loc == nil {
			return
		}
		out = append(out, model.Match{
			File: path,
			Line: n,
			Text: string(line),
			Mode: model.ModeGrep,
			Span: spanFor(n, start, loc[0], loc[1]),
		})
	})
	return out
}

// matchBasic enriches each matching line with the innermost function
// containing it. Containment is by line, so the signature line and the
// closing-brace line both count as inside; an anonymous innermost
// record resolves to its nearest named enclosing function, and that
// one record supplies both the name and, with printBody, the body.
// Each function's body is attached to its first matching line only;
// later hits in the same function still report the line, just without
// repeating the body.
func matchBasic(path string, data []byte, pat *regexp.Regexp, recs []*parser.FunctionRecord, printBody bool) []model.Match {
	var out []model.Match
	dumped := make(map[*parser.FunctionRecord]bool)
	forEachLine(data, func(n, start int, line []byte) {
		loc := pat.FindIndex(line)
		if loc == nil {
			return
		}
		m := model.Match{
			File: path,
			Line: n,
			Text: string(line),
			Mode: model.ModeBasic,
			Span: spanFor(n, start, loc[0], loc[1]),
		}
		if rec := innermostOnLine(recs, n); rec != nil {
			if named := rec.NearestNamed(); named != nil {
				m.Function = named.Name
				if printBody && !dumped[named] {
					dumped[named] = true
					m.Body = named.Body
				}
			}
		}
		out = append(out, m)
	})
	return out
}

// matchMethod matches the pattern against function names and emits one
// record per hit with the full signature and body. Anonymous records
// are excluded; abstract declarations are reported without a body.
func matchMethod(path string, data []byte, pat *regexp.Regexp, recs []*parser.FunctionRecord) []model.Match {
	var out []model.Match
	for _, rec := range recs {
		if rec.Name == "" || !pat.MatchString(rec.Name) {
			continue
		}
		m := model.Match{
			File:      path,
			Line:      rec.SigStart.Line,
			Text:      lineOf(data, rec.SigStart),
			Mode:      model.ModeMethod,
			Function:  rec.Name,
			Signature: rec.Signature,
			Span: model.Span{
				StartLine: rec.SigStart.Line,
				StartCol:  rec.SigStart.Col,
				EndLine:   rec.SigStart.Line,
				EndCol:    rec.SigStart.Col,
				ByteStart: rec.SigStart.Offset,
				ByteEnd:   rec.SigStart.Offset,
			},
		}
		if rec.HasBody() {
			m.Body = rec.Body
			m.Span.EndLine = rec.BodyEnd.Line
			m.Span.EndCol = rec.BodyEnd.Col
			m.Span.ByteEnd = rec.BodyEnd.Offset
		} else {
			m.NoBody = true
		}
		out = append(out, m)
	}
	return out
}

// innermostOnLine returns the record with the latest signature whose
// line span still contains the line. Records are ordered by signature
// position and nest properly, so the last containing record is the
// innermost one.
func innermostOnLine(recs []*parser.FunctionRecord, line int) *parser.FunctionRecord {
	idx := sort.Search(len(recs), func(i int) bool {
		return recs[i].SigStart.Line > line
	})
	for i := idx - 1; i >= 0; i-- {
		if recs[i].ContainsLine(line) {
			return recs[i]
		}
	}
	return nil
}

// forEachLine calls fn for every line with its 1-based number and the
// byte offset of the line start. Line content excludes the newline.
func forEachLine(data []byte, fn func(n, start int, line []byte)) {
	n := 1
	start := 0
	for start < len(data) {
		end := bytes.IndexByte(data[start:], '\n')
		if end < 0 {
			fn(n, start, trimCR(data[start:]))
			break
		}
		fn(n, start, trimCR(data[start:start+end]))
		start += end + 1
		n++
	}
}

func trimCR(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}

func spanFor(line, lineStart, locStart, locEnd int) model.Span {
	return model.Span{
		StartLine: line,
		StartCol:  locStart,
		EndLine:   line,
		EndCol:    locEnd,
		ByteStart: lineStart + locStart,
		ByteEnd:   lineStart + locEnd,
	}
}

func lineOf(data []byte, pos parser.Position) string {
	start := pos.Offset - pos.Col
	if start < 0 {
		start = 0
	}
	end := bytes.IndexByte(data[start:], '\n')
	if end < 0 {
		end = len(data) - start
	}
	return strings.TrimRight(string(data[start:start+end]), "\r")
}
