package source

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/reoring/docskema"
)

// Encode renders doc as JSON. Map keys come out sorted.
func Encode(doc docskema.Document, opt Options) ([]byte, error) {
	var v any = doc
	if opt.ExtendedJSON {
		v = toExtended(doc)
	}
	if opt.Indent != "" {
		return json.MarshalIndent(v, "", opt.Indent)
	}
	return json.Marshal(v)
}

// Write encodes doc to w followed by a newline.
func Write(w io.Writer, doc docskema.Document, opt Options) error {
	b, err := Encode(doc, opt)
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
