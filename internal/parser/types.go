package parser

// FunctionRecord is the extracted metadata for one function or method
// definition. Records for a file are ordered by signature position and
// nest properly: body spans never partially overlap.
type FunctionRecord struct {
	// Name is empty for closures and other anonymous functions. Such
	// records are kept for the enclosing relation but excluded from
	// name-based search.
	Name string
	// Params is the raw parameter-list text between the parentheses,
	// stored verbatim.
	Params string
	// ReturnType is the trimmed text after ':', if any.
	ReturnType string
	// Signature is the verbatim source from the function keyword up to
	// (exclusive) the opening brace or terminating semicolon.
	Signature string

	SigStart  Position
	BodyStart Position
	BodyEnd   Position
	// Body is the source slice from BodyStart to BodyEnd, braces
	// included. Empty for abstract declarations.
	Body string

	// Abstract marks a signature terminated by ';' instead of a body
	// (interface methods, abstract methods).
	Abstract bool

	// Enclosing points to the nearest outer record whose body contains
	// this one, or nil. The relation is one-directional; ownership
	// stays with the flat record list.
	Enclosing *FunctionRecord
}

// HasBody reports whether the record carries a body span.
func (r *FunctionRecord) HasBody() bool { return !r.Abstract }

// ContainsLine reports whether the line falls inside the record.
// Containment is by line: the signature line and the closing-brace
// line both belong to the function, so a hit after the `}` on the
// body's last line is still attributed to it.
func (r *FunctionRecord) ContainsLine(line int) bool {
	if r.Abstract {
		return false
	}
	return r.SigStart.Line <= line && line <= r.BodyEnd.Line
}

// NearestNamed walks the enclosing chain up to the first record with a
// name, starting at the record itself. Returns nil when every record
// on the chain is anonymous.
func (r *FunctionRecord) NearestNamed() *FunctionRecord {
	for cur := r; cur != nil; cur = cur.Enclosing {
		if cur.Name != "" {
			return cur
		}
	}
	return nil
}

// ScanInfo carries per-file diagnostics from an extraction pass.
type ScanInfo struct {
	// Unterminated is set when the file ended inside a string, comment
	// or function body. Implicit closure at EOF applied; this only
	// feeds the end-of-run diagnostic count.
	Unterminated bool
}
