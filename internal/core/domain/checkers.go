package domain

import (
	"fmt"
	"strconv"
)

const (
	minUsernameSize = 5
	maxUsernameSize = 128

	minPasswordSize = 8
	maxPasswordSize = 255
)

// JSON body field names shared by checkers and the HTTP layer.
const (
	KeyUserID    = "user_id"
	KeyUsername  = "username"
	KeyPassword  = "password"
	KeyFirstName = "first_name"
	KeyLastName  = "last_name"
)

// Body is a decoded JSON request body.
type Body map[string]any

// GetString reads a required string field from a decoded JSON body. A missing
// key and a key of the wrong type are reported with distinct codes.
func GetString(key string, body Body) (string, *Error) {
	val, ok := body[key]
	if !ok {
		return "", NewError(CodeKeyNotFound, Arg{"key", key})
	}

	s, ok := val.(string)
	if !ok {
		return "", NewError(CodeInvalidType, Arg{"key", key}, Arg{"type", "string"})
	}

	return s, nil
}

func isAlnumOrDot(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '.'
}

// isGraph reports whether c is a printable, non-space ASCII character.
func isGraph(c byte) bool {
	return c > 0x20 && c < 0x7f
}

// CheckUsername validates the username shape. Checks short-circuit: size
// first, then the leading dot, then the character scan.
func CheckUsername(username string) *Error {
	if len(username) < minUsernameSize || maxUsernameSize < len(username) {
		return NewError(CodeUsernameInvalidSize,
			Arg{"min", strconv.Itoa(minUsernameSize)},
			Arg{"max", strconv.Itoa(maxUsernameSize)},
			Arg{"current", strconv.Itoa(len(username))},
		)
	}

	if username[0] == '.' {
		return NewError(CodeUsernameBeginWithDot)
	}

	for i := 0; i < len(username); i++ {
		if !isAlnumOrDot(username[i]) {
			return NewError(CodeUsernameInvalidChar,
				Arg{"pos", strconv.Itoa(i)},
				Arg{"hex", fmt.Sprintf("%x", username[i])},
			)
		}
	}

	return nil
}

// CheckPassword validates the password shape: size first, then a scan for
// non-printable or space characters.
func CheckPassword(password string) *Error {
	if len(password) < minPasswordSize || maxPasswordSize < len(password) {
		return NewError(CodePasswordInvalidSize,
			Arg{"min", strconv.Itoa(minPasswordSize)},
			Arg{"max", strconv.Itoa(maxPasswordSize)},
			Arg{"current", strconv.Itoa(len(password))},
		)
	}

	for i := 0; i < len(password); i++ {
		if !isGraph(password[i]) {
			return NewError(CodePasswordInvalidChar,
				Arg{"pos", strconv.Itoa(i)},
				Arg{"hex", fmt.Sprintf("%x", password[i])},
			)
		}
	}

	return nil
}

// ExtractUsername reads and validates the username field in one step.
func ExtractUsername(body Body) (string, *Error) {
	username, err := GetString(KeyUsername, body)
	if err != nil {
		if err.Code == CodeKeyNotFound {
			return "", NewError(CodeUsernameNotFound)
		}
		return "", err
	}

	if err := CheckUsername(username); err != nil {
		return "", err
	}

	return username, nil
}

// ExtractPassword reads and validates the password field in one step.
func ExtractPassword(body Body) (string, *Error) {
	password, err := GetString(KeyPassword, body)
	if err != nil {
		if err.Code == CodeKeyNotFound {
			return "", NewError(CodePasswordNotFound)
		}
		return "", err
	}

	if err := CheckPassword(password); err != nil {
		return "", err
	}

	return password, nil
}
