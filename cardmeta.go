package cardmeta

import (
	"io"

	"github.com/ustc21xyx/cardmeta/driver"
	"github.com/ustc21xyx/cardmeta/png"
)

// Read extracts and parses the character card embedded in the image
// read from r. The string returned is the carrier keyword the card
// was stored under.
//
// It returns driver.ErrUnknownFormat if no registered carrier format
// recognises the input.
func Read(r io.Reader) (*Card, string, error) {
	p, err := io.ReadAll(r)
	if err != nil {
		return nil, "", err
	}

	c, _ := driver.Lookup(p)
	if c == nil {
		return nil, "", driver.ErrUnknownFormat
	}

	kw, text, err := c.Extract(p)
	if err != nil {
		return nil, "", err
	}

	card, err := ParseCard([]byte(text))
	if err != nil {
		return nil, "", err
	}
	return card, kw, nil
}

// Write embeds card into the image read from src and writes the
// rewritten image to w. keywords selects the carrier keywords to
// write under; with none given, both chara and ccv3 are written.
func Write(w io.Writer, src io.Reader, card *Card, keywords ...string) error {
	text, err := card.JSON()
	if err != nil {
		return err
	}

	p, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	c, _ := driver.Lookup(p)
	if c == nil {
		return driver.ErrUnknownFormat
	}

	if len(keywords) == 0 {
		keywords = []string{png.KeywordChara, png.KeywordCCv3}
	}

	out, err := c.Embed(p, string(text), keywords)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// Strip copies the image read from src to w with any embedded
// character cards removed.
func Strip(w io.Writer, src io.Reader) error {
	p, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	c, _ := driver.Lookup(p)
	if c == nil {
		return driver.ErrUnknownFormat
	}

	out, err := c.Strip(p)
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}
