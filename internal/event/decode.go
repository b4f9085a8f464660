package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T. In-process payloads are T or *T
// already; payloads read back from JSON (dead letters) are re-decoded.
func DecodePayload[T any](input any) (T, error) {
	var zero T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return zero, fmt.Errorf(ErrMsgNilPayloadFmt, zero)
		}
		return *v, nil
	case nil:
		return zero, fmt.Errorf(ErrMsgNilPayloadFmt, zero)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return zero, fmt.Errorf(ErrMsgDecodePayloadFmt, zero, err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf(ErrMsgDecodePayloadFmt, zero, err)
	}
	return out, nil
}
