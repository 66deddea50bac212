package connection

type NoPayload bool

// Message is the envelope of every frame in both directions. Error is set
// only on server replies that did not go through.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// AddErr reports err to the client, with message as the human readable part.
func (m *Message[T]) AddErr(err error, message string) {
	m.AddError(err.Error(), message)
}

func (m *Message[T]) Failed() bool {
	return m.Error != nil
}
