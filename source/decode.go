package source

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode returns a Reader for the runes decoded from r with the given
// encoding. A leading byte order mark overrides enc and is skipped. A nil enc
// means UTF-8.
//
func Decode(r io.Reader, enc encoding.Encoding) *RuneReader {
	if enc == nil {
		enc = unicode.UTF8
	}
	tr := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
	rr := Runes(tr)
	rr.c = r
	return rr
}

// Lookup returns the encoding with the given IANA name or alias, like
// "utf-8", "latin1" or "windows-1252".
//
func Lookup(name string) (encoding.Encoding, error) {
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", name)
	}
	if e == nil {
		return nil, errors.Errorf("unsupported encoding %q", name)
	}
	return e, nil
}
