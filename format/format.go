package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/packrat/ely"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(expr *ely.Expression) error
}

// New returns the encoder registered for name: "text", "grouped" or "json".
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "text", "":
		return NewTextEncoder(w), nil
	case "grouped":
		return NewGroupedEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
