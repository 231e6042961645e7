package codec

import (
	"fmt"
	"time"

	"github.com/reoring/docskema"
)

// RFC3339 stores RFC 3339 strings as time.Time. Reading back formats with
// RFC3339Nano in the stored offset, so trailing fractional zeros are lost.
func RFC3339() *FuncCodec[time.Time, string] {
	return Func("rfc3339", docskema.TypeTime, docskema.TypeString,
		parseRFC3339,
		func(t time.Time) (string, error) { return formatRFC3339Canonical(t), nil },
	).WithValidate(func(s string) error {
		_, err := parseRFC3339(s)
		return err
	}).AsLossy()
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, fmt.Errorf("invalid RFC3339 time %q", s)
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
