package png

import (
	"github.com/pkg/errors"

	"github.com/ustc21xyx/cardmeta/driver"
)

func init() {
	driver.RegisterCarrierFormat("png", pngHeader, carrier{})
}

var _ driver.Carrier = carrier{}

type carrier struct{}

func (carrier) Extract(p []byte) (string, string, error) {
	e, err := Extract(p)
	if err != nil {
		return "", "", err
	}
	return e.Keyword, e.Text, nil
}

func (carrier) Embed(p []byte, text string, keywords []string) ([]byte, error) {
	var opt EmbedOptions
	for _, kw := range keywords {
		switch kw {
		case KeywordChara:
			opt.WriteChara = true
		case KeywordCCv3:
			opt.WriteCCv3 = true
		default:
			return nil, errors.Errorf("png: unknown carrier keyword %q", kw)
		}
	}
	return Embed(p, text, &opt)
}

func (carrier) Strip(p []byte) ([]byte, error) {
	return Strip(p)
}
