/*

Conversion of sessions to and from their stored form.

*/

package memsession

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMarshal is wrapped by errors returned when a session cannot be
	// converted to its stored form.
	ErrMarshal = errors.New("memsession: cannot marshal session")

	// ErrUnmarshal is wrapped by errors returned when a stored payload cannot be
	// converted back to a session.
	ErrUnmarshal = errors.New("memsession: cannot unmarshal session")
)

// Codec converts sessions to and from the payload stored in the Client.
type Codec interface {
	Marshal(sess *Session) ([]byte, error)
	Unmarshal(data []byte, sess *Session) error
}

// JSONCodec is the default Codec; it stores sessions as JSON text.
// Attribute numbers come back as float64.
var JSONCodec Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Marshal(sess *Session) ([]byte, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, sess *Session) error {
	if err := json.Unmarshal(data, sess); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshal, err)
	}
	return nil
}
