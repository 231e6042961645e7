package codec

import (
	"fmt"
	"strconv"

	"github.com/reoring/docskema"
)

// Decimal stores decimal strings ("9.99") as float64. It is lossy: the domain
// form is rebuilt with the shortest representation, so "9.90" reads back as
// "9.9".
func Decimal() *FuncCodec[float64, string] {
	return Func("decimal", docskema.TypeFloat, docskema.TypeString,
		func(s string) (float64, error) {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid decimal %q", s)
			}
			return f, nil
		},
		func(f float64) (string, error) { return strconv.FormatFloat(f, 'f', -1, 64), nil },
	).WithValidate(func(s string) error {
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("invalid decimal %q", s)
		}
		return nil
	}).AsLossy()
}
