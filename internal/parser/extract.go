package parser

import (
	"strings"
)

// Extract scans PHP source and returns every function/method
// definition in signature order. It never fails: malformed input
// degrades to best-effort records and a diagnostic flag.
func Extract(src []byte) ([]*FunctionRecord, ScanInfo) {
	e := &extractor{src: src, sc: NewScanner(src)}
	e.run()
	info := ScanInfo{Unterminated: e.sc.Unterminated() || e.sawOpenAtEOF}
	return e.records, info
}

type sigStage int

const (
	stageName sigStage = iota
	stageParams
	stageAfterParams
	stageUse
	stageReturn
)

// sigParse tracks one signature between the `function` keyword and its
// body brace or terminating semicolon. Signatures cannot nest, so a
// single slot suffices.
type sigParse struct {
	rec         *FunctionRecord
	stage       sigStage
	name        []byte
	parenDepth  int
	paramsStart int
	word        []byte
	sawUse      bool
	retStart    int
}

type openBody struct {
	rec   *FunctionRecord
	depth int
}

type extractor struct {
	src     []byte
	sc      *Scanner
	records []*FunctionRecord
	open    []openBody
	sig     *sigParse

	ident      []byte
	identStart Position
	identPrev  byte
	prevCode   byte

	lastPos      Position
	sawOpenAtEOF bool
}

func (e *extractor) run() {
	for {
		ev, ok := e.sc.Next()
		if !ok {
			break
		}
		e.lastPos = ev.Pos

		if e.sig != nil {
			if e.stepSig(ev) {
				continue
			}
			// Signature abandoned; the event falls through to the
			// regular handling below.
		}

		if ev.State == StateCode && ev.Ch == '}' {
			e.closeBody(ev)
		}
		e.trackIdent(ev)
	}

	// Implicit closure at EOF for anything still open.
	if len(e.open) > 0 {
		e.sawOpenAtEOF = true
	}
	for i := len(e.open) - 1; i >= 0; i-- {
		rec := e.open[i].rec
		rec.BodyEnd = e.lastPos
		rec.Body = string(e.src[rec.BodyStart.Offset:])
	}
	e.open = nil
}

// trackIdent accumulates identifier runs in code state and starts a
// signature parse when a standalone `function` keyword completes.
func (e *extractor) trackIdent(ev Event) {
	if ev.State == StateCode && isWordByte(ev.Ch) {
		if len(e.ident) == 0 {
			e.identStart = ev.Pos
			e.identPrev = e.prevCode
		}
		e.ident = append(e.ident, ev.Ch)
		return
	}

	if len(e.ident) > 0 {
		if isFunctionKeyword(e.ident) && e.identPrev != '$' {
			e.beginSig()
			e.ident = e.ident[:0]
			// Re-feed the terminating byte: `function(` has the paren
			// directly after the keyword.
			if !e.stepSig(ev) && ev.State == StateCode && ev.Ch == '}' {
				e.closeBody(ev)
			}
			if ev.State == StateCode {
				e.prevCode = ev.Ch
			}
			return
		}
		e.ident = e.ident[:0]
	}
	if ev.State == StateCode {
		e.prevCode = ev.Ch
	}
}

func (e *extractor) beginSig() {
	rec := &FunctionRecord{SigStart: e.identStart}
	if n := len(e.open); n > 0 {
		rec.Enclosing = e.open[n-1].rec
	}
	e.sig = &sigParse{rec: rec, stage: stageName}
}

// stepSig consumes one event for the active signature. It reports
// false when the event turned out not to belong to a definition, in
// which case the caller reprocesses it.
func (e *extractor) stepSig(ev Event) bool {
	s := e.sig
	switch s.stage {
	case stageName:
		if ev.State != StateCode {
			return true
		}
		ch := ev.Ch
		switch {
		case ch == '(':
			s.rec.Name = string(s.name)
			s.stage = stageParams
			s.parenDepth = 1
			s.paramsStart = ev.Pos.Offset + 1
		case ch == '&' && len(s.name) == 0:
			// By-reference marker before the name.
		case isWordByte(ch):
			s.name = append(s.name, ch)
		case isSpaceByte(ch):
			// Whitespace between keyword, name and paren.
		default:
			// `function` used as a bare word, not a definition.
			e.sig = nil
			return false
		}
		return true

	case stageParams:
		if ev.State == StateCode {
			switch ev.Ch {
			case '(':
				s.parenDepth++
			case ')':
				s.parenDepth--
				if s.parenDepth == 0 {
					s.rec.Params = string(e.src[s.paramsStart:ev.Pos.Offset])
					s.stage = stageAfterParams
					s.word = s.word[:0]
				}
			}
		}
		return true

	case stageAfterParams:
		if ev.State != StateCode {
			return true
		}
		ch := ev.Ch
		switch {
		case isWordByte(ch):
			s.word = append(s.word, ch)
		case ch == '(':
			// Closure `use (...)` capture list; not part of the
			// parameter text.
			s.stage = stageUse
			s.parenDepth = 1
			s.word = s.word[:0]
		case ch == ':':
			s.stage = stageReturn
			s.retStart = ev.Pos.Offset + 1
		case ch == '{':
			e.openBodyAt(ev)
		case ch == ';':
			e.finishAbstract(ev)
		default:
			s.word = s.word[:0]
		}
		return true

	case stageUse:
		if ev.State == StateCode {
			switch ev.Ch {
			case '(':
				s.parenDepth++
			case ')':
				s.parenDepth--
				if s.parenDepth == 0 {
					s.stage = stageAfterParams
					s.word = s.word[:0]
				}
			}
		}
		return true

	case stageReturn:
		if ev.State != StateCode {
			return true
		}
		switch ev.Ch {
		case '{':
			s.rec.ReturnType = strings.TrimSpace(string(e.src[s.retStart:ev.Pos.Offset]))
			e.openBodyAt(ev)
		case ';':
			s.rec.ReturnType = strings.TrimSpace(string(e.src[s.retStart:ev.Pos.Offset]))
			e.finishAbstract(ev)
		}
		return true
	}
	return true
}

func (e *extractor) openBodyAt(ev Event) {
	rec := e.sig.rec
	rec.BodyStart = ev.Pos
	rec.Signature = strings.TrimSpace(string(e.src[rec.SigStart.Offset:ev.Pos.Offset]))
	e.records = append(e.records, rec)
	// ev.Depth already includes this brace; the matching close is the
	// '}' that brings the depth back below it.
	e.open = append(e.open, openBody{rec: rec, depth: ev.Depth})
	e.sig = nil
}

func (e *extractor) finishAbstract(ev Event) {
	rec := e.sig.rec
	rec.Abstract = true
	rec.Signature = strings.TrimSpace(string(e.src[rec.SigStart.Offset:ev.Pos.Offset]))
	e.records = append(e.records, rec)
	e.sig = nil
}

func (e *extractor) closeBody(ev Event) {
	n := len(e.open)
	if n == 0 {
		return
	}
	top := e.open[n-1]
	if ev.Depth != top.depth-1 {
		return
	}
	rec := top.rec
	rec.BodyEnd = ev.Pos
	rec.Body = string(e.src[rec.BodyStart.Offset : ev.Pos.Offset+1])
	e.open = e.open[:n-1]
}

func isFunctionKeyword(ident []byte) bool {
	// PHP keywords are case-insensitive.
	return len(ident) == 8 && strings.EqualFold(string(ident), "function")
}

func isWordByte(ch byte) bool {
	return ch == '_' || ch >= 0x80 ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9')
}

func isSpaceByte(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
