package connection

import "fmt"

// Outcomes of a failed read or write on a session connection.
const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnInvalidMsgType

	// the session had no match worth waiting for after an abnormal closure
	ConnNoMatchToResume
	ConnGracePeriodOver
)

type ConnErr struct {
	code      uint8
	sessionId string
	desc      string
	cause     error
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) ForSession(sessionId string) ConnErr {
	c.sessionId = sessionId
	return c
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) WithCause(err error) ConnErr {
	c.cause = err
	return c
}

func (c ConnErr) Error() string {
	msg := fmt.Sprintf("connection error - code: %d\tsession: %s\tdesc: %s", c.code, c.sessionId, c.desc)
	if c.cause != nil {
		msg += "\tcause: " + c.cause.Error()
	}
	return msg
}

func (c ConnErr) Unwrap() error {
	return c.cause
}

func (c ConnErr) Code() uint8 {
	return c.code
}

// EndsSession reports whether the session loop has to stop.
func (c ConnErr) EndsSession() bool {
	return c.code != ConnLoopRetry && c.code != ConnLoopContinue && c.code != ConnLoopAbnormalClosureRetry
}
