package png

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Carrier keywords marking a tEXt chunk as holding a character card.
const (
	KeywordChara = "chara" // Character Card V2
	KeywordCCv3  = "ccv3"  // Character Card V3
)

var (
	// ErrNotPNG is returned by Embed and Strip when the buffer does
	// not start with the PNG signature.
	ErrNotPNG = errors.New("png: missing signature")

	// ErrMissingIEND is returned by Embed and Strip when the buffer
	// has no IEND chunk to anchor the rewrite.
	ErrMissingIEND = errors.New("png: missing IEND chunk")

	// ErrCardNotFound is returned by Extract when no character card
	// is embedded. Buffers that are not PNG files at all yield
	// ErrCardNotFound as well.
	ErrCardNotFound = errors.New("png: no character card")
)

// DecodeError reports a card chunk that was found but whose payload
// could not be decoded.
type DecodeError struct {
	Keyword string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("png: invalid %s payload: %v", e.Keyword, e.Err)
}

// Cause returns the underlying decode failure.
func (e *DecodeError) Cause() error { return e.Err }

func (e *DecodeError) Unwrap() error { return e.Err }

// Embedded is a character-card payload found in a PNG buffer.
type Embedded struct {
	Keyword string // carrier keyword the card was stored under
	Text    string // decoded card document, UTF-8 JSON
}

// Extract returns the first embedded character card in p, in chunk
// order. It returns ErrCardNotFound if no tEXt chunk carries a card,
// and a *DecodeError if a card chunk was found but its base64 or
// UTF-8 decoding failed. Later candidates are not tried after a
// decode failure, so a corrupt card is reported rather than masked.
func Extract(p []byte) (*Embedded, error) {
	if !hasSignature(p) {
		return nil, ErrCardNotFound
	}

	r := newChunkReader(p)
	for r.next() {
		if r.typ != chunkTEXt {
			continue
		}
		kw := textKeyword(r.data)
		if !isCardKeyword(kw) {
			continue
		}
		text, err := decodeCard(r.data[len(kw)+1:])
		if err != nil {
			return nil, &DecodeError{Keyword: kw, Err: err}
		}
		return &Embedded{Keyword: kw, Text: text}, nil
	}
	return nil, ErrCardNotFound
}

func isCardKeyword(kw string) bool {
	return kw == KeywordChara || kw == KeywordCCv3
}

func decodeCard(p []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(string(p))
	if err != nil {
		return "", errors.Wrap(err, "base64")
	}
	if !utf8.Valid(raw) {
		return "", errors.New("text is not valid UTF-8")
	}
	return string(raw), nil
}
