// Package codec centralizes the JSON encoding of level tables and item output.
//
// Two implementations are built in: the standard library (JSON) and
// github.com/goccy/go-json (GoJSON). They produce interchangeable bytes, so
// a file written by one decodes with the other.
package codec

import "fmt"

// Codec turns records and item lists into JSON and back. Pipeline workers
// share one Codec, so it must not keep per-call state.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Names lists the built-in codec names.
var Names = []string{"json", "go-json"}

// ByName resolves the names accepted by the --codec flag. The empty name
// selects GoJSON.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json", "":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal panics on error. A nil c means Default.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
