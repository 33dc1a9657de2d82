package domain

import (
	"encoding/json"
	"strings"
)

// ErrorCode enumerates every failure the core can report. The set is closed:
// handlers map codes to HTTP statuses and clients rely on the values staying
// stable.
type ErrorCode string

const (
	CodeExpectJSONBody         ErrorCode = "expect_json_body"
	CodeConvertParameterFailed ErrorCode = "convert_parameter_failed"

	CodeKeyNotFound  ErrorCode = "key_not_found"
	CodeInvalidType  ErrorCode = "invalid_type"
	CodeInvalidValue ErrorCode = "invalid_value"

	CodeUsernameNotFound     ErrorCode = "username_not_found"
	CodeUsernameInvalidSize  ErrorCode = "username_invalid_size"
	CodeUsernameBeginWithDot ErrorCode = "username_begin_with_dot"
	CodeUsernameInvalidChar  ErrorCode = "username_invalid_char"

	CodePasswordNotFound    ErrorCode = "password_not_found"
	CodePasswordInvalidSize ErrorCode = "password_invalid_size"
	CodePasswordInvalidChar ErrorCode = "password_invalid_char"

	CodeUserAlreadyExist ErrorCode = "user_already_exist"
	CodeAuthorizeFailed  ErrorCode = "authorize_failed"
	CodeInvalidUserID    ErrorCode = "invalid_user_id"
)

var errorMessages = map[ErrorCode]string{
	CodeExpectJSONBody:         "expect json body",
	CodeConvertParameterFailed: "convert parameter failed",

	CodeKeyNotFound:  "key not found",
	CodeInvalidType:  "invalid type",
	CodeInvalidValue: "invalid value",

	CodeUsernameNotFound:     "username key not found",
	CodeUsernameInvalidSize:  "username have invalid size",
	CodeUsernameBeginWithDot: "username begin with dot",
	CodeUsernameInvalidChar:  "username contain invalid char",

	CodePasswordNotFound:    "password key not found",
	CodePasswordInvalidSize: "password have invalid size",
	CodePasswordInvalidChar: "password contain invalid char",

	CodeUserAlreadyExist: "user already exist",
	CodeAuthorizeFailed:  "authorization failed",
	CodeInvalidUserID:    "invalid user id",
}

// Arg is one key/value context pair attached to an Error.
type Arg struct {
	Key   string
	Value string
}

// Error is a structured failure value: a code plus ordered diagnostic
// context. It is passed around as a value, never panicked.
type Error struct {
	Code ErrorCode
	Args []Arg
}

// NewError builds an error with optional ordered context pairs.
func NewError(code ErrorCode, args ...Arg) *Error {
	return &Error{Code: code, Args: args}
}

// Message returns the human-readable description for the code.
func (e *Error) Message() string {
	if msg, ok := errorMessages[e.Code]; ok {
		return msg
	}
	return "unknown error"
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message())
	for _, arg := range e.Args {
		b.WriteString(", ")
		b.WriteString(arg.Key)
		b.WriteString(": ")
		b.WriteString(arg.Value)
	}
	return b.String()
}

// MarshalJSON renders the error as {code, message, args} with args as an
// object keyed by the context pair names.
func (e *Error) MarshalJSON() ([]byte, error) {
	payload := struct {
		Code    ErrorCode         `json:"code"`
		Message string            `json:"message"`
		Args    map[string]string `json:"args,omitempty"`
	}{
		Code:    e.Code,
		Message: e.Message(),
	}

	if len(e.Args) > 0 {
		payload.Args = make(map[string]string, len(e.Args))
		for _, arg := range e.Args {
			payload.Args[arg.Key] = arg.Value
		}
	}

	return json.Marshal(payload)
}
