package plist

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes l as a JSON array.
func (l List[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.ToSlice())
}

// UnmarshalJSON decodes a JSON array into l. The list keeps its context, or
// uses the default context for a zero list.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	if l == nil {
		return fmt.Errorf("%w: unmarshal into nil list", ErrInvalidState)
	}
	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*l = OfContext(l.ctx, values...)
	return nil
}
