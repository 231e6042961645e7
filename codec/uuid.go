package codec

import (
	"github.com/google/uuid"
	"github.com/reoring/docskema"
)

// UUID stores uuid.UUID values as their canonical string form.
func UUID() *FuncCodec[string, uuid.UUID] {
	return Func("uuid", docskema.TypeString, docskema.TypeUUID,
		func(u uuid.UUID) (string, error) { return u.String(), nil },
		uuid.Parse,
	)
}
