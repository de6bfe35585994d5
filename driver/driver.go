// Package driver holds the carrier format registry shared by cardmeta
// and its format packages.
package driver

import "github.com/pkg/errors"

// Carrier reads and writes embedded character cards in an image buffer.
type Carrier interface {
	// Extract returns the carrier keyword and decoded card text of
	// the first embedded card.
	Extract(p []byte) (keyword, text string, err error)

	// Embed returns a rewritten buffer carrying text under the given
	// keywords, replacing any earlier card with the same keyword.
	Embed(p []byte, text string, keywords []string) ([]byte, error)

	// Strip returns a rewritten buffer with embedded cards removed.
	Strip(p []byte) ([]byte, error)
}

// ErrUnknownFormat is returned when no registered carrier format
// matches the input.
var ErrUnknownFormat = errors.New("cardmeta: unknown image format")

type carrierFormat struct {
	name, magic string

	carrier Carrier
}

var (
	carrierFormats []carrierFormat
	peekLen        int
)

// RegisterCarrierFormat registers a carrier format with its magic
// prefix. Bytes in magic matching '?' are wildcards.
// Registration is typically done by an init function in the
// format-specific package.
func RegisterCarrierFormat(name, magic string, c Carrier) {
	for _, cf := range carrierFormats {
		if cf.name == name {
			panic(errors.Errorf("duplicate carrier format %q", name))
		}
	}

	carrierFormats = append(carrierFormats, carrierFormat{
		name:    name,
		magic:   magic,
		carrier: c,
	})

	if len(magic) > peekLen {
		peekLen = len(magic)
	}
}

// PeekLen returns the number of prefix bytes needed by Lookup to
// recognise any registered format.
func PeekLen() int { return peekLen }

// Lookup returns the carrier format matching prefix, or nil.
func Lookup(prefix []byte) (Carrier, string) {
	for _, cf := range carrierFormats {
		if isMagic(prefix, cf.magic) {
			return cf.carrier, cf.name
		}
	}
	return nil, ""
}

func isMagic(prefix []byte, magic string) bool {
	if len(prefix) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != prefix[i] {
			return false
		}
	}
	return true
}
