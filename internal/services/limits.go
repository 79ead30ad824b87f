package services

import "unicode/utf8"

// Column widths of the MySQL schema, in characters. bcrypt only reads the
// first 72 bytes of a password and rejects anything longer.
const (
	maxUsernameLen   = 100
	maxStudentIDLen  = 100
	maxUserNameLen   = 255
	maxStopNameLen   = 255
	maxBusNumberLen  = 50
	maxPasswordBytes = 72
)

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
