package pipeline

import (
	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
)

// Message is what flows through a Pipeline.
type Message struct {
	ID         string
	Body       []byte
	Properties map[string]string
}

// NewMessage wraps body in a Message with a fresh id.
func NewMessage(body []byte) (*Message, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "cannot generate message id")
	}
	return &Message{
		ID:         id.String(),
		Body:       body,
		Properties: map[string]string{},
	}, nil
}
