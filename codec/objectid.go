package codec

import (
	"fmt"

	"github.com/reoring/docskema"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID stores 24-character hex strings as BSON ObjectIDs.
func ObjectID() *FuncCodec[primitive.ObjectID, string] {
	return Func("objectid", docskema.TypeObjectID, docskema.TypeString,
		primitive.ObjectIDFromHex,
		func(id primitive.ObjectID) (string, error) { return id.Hex(), nil },
	).WithValidate(func(s string) error {
		if !primitive.IsValidObjectID(s) {
			return fmt.Errorf("invalid object id %q", s)
		}
		return nil
	})
}
