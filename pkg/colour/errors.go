package colour

import "errors"

// Error taxonomy shared by colours, groups and camps. Callers match with errors.Is.
var (
	// ErrNumericInterval reports a channel, alpha, hue or stop outside its interval.
	ErrNumericInterval = errors.New("value outside of interval")

	// ErrInvalidValue reports a malformed name, hex string, stop sequence,
	// unknown representation or group type, or a name collision.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidType reports a value of the wrong kind, such as a nil colour
	// inside a group or an unsupported operand.
	ErrInvalidType = errors.New("invalid type")

	// ErrAttribute reports an object that lacks a required name or whose name
	// disagrees with the key it is stored under.
	ErrAttribute = errors.New("attribute error")

	// ErrNotFound reports a missing bucket entry, camp or file.
	ErrNotFound = errors.New("not found")

	// ErrFileExists reports a write that would replace different content
	// without an explicit overwrite.
	ErrFileExists = errors.New("file already exists")
)
