package errorx

import (
	"errors"
	"fmt"
)

type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is reports whether err is an Error carrying the given code.
func Is(err error, code Code) bool {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code == code
	}

	return false
}

// ErrorCode lets the rpc server send the code to callers.
func (e Error) ErrorCode() int {
	return int(e.Code)
}
