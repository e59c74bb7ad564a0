package langsvr

import (
	"unicode/utf16"

	"github.com/dhamidi/packrat/ely"
	"github.com/dhamidi/packrat/peg"
	"github.com/pkg/errors"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const source = "ely"

// Diagnostics parses text and reports at most one problem. The result is
// empty, not nil, when text parses, so that publishing it clears earlier
// diagnostics.
func Diagnostics(text string) []protocol.Diagnostic {
	_, err := ely.ParseSource(text)
	if err == nil {
		return []protocol.Diagnostic{}
	}

	runes := []rune(text)
	start, end := 0, len(runes)
	var serr *peg.SyntaxError
	if errors.As(err, &serr) {
		start = int(serr.Offset)
		if serr.Leftover != "" {
			end = start + len([]rune(serr.Leftover))
		} else {
			end = start + 1
		}
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start > end {
		start = end
	}

	severity := protocol.DiagnosticSeverityError
	src := source
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: position(runes, start),
			End:   position(runes, end),
		},
		Severity: &severity,
		Source:   &src,
		Message:  err.Error(),
	}}
}

// position converts a rune offset into an LSP position, whose character
// is counted in UTF-16 code units.
func position(runes []rune, offset int) protocol.Position {
	var line, char protocol.UInteger
	for _, r := range runes[:offset] {
		if r == '\n' {
			line++
			char = 0
			continue
		}
		char += protocol.UInteger(utf16.RuneLen(r))
	}
	return protocol.Position{Line: line, Character: char}
}
