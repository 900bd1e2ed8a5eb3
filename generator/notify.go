package generator

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fancyqr/fancyqr/builder"
)

// Level is the severity of a notification shown to the user.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is the single message a front end shows after an action.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notify classifies the outcome of a generation writing to output.
func Notify(err error, output string) Notification {
	switch {
	case err == nil:
		return Notification{
			Level:   LevelInfo,
			Title:   "Success",
			Message: fmt.Sprintf("QR Code generated as %s!", filepath.Base(output)),
		}
	case errors.Is(err, builder.ErrEmptyInput):
		return Notification{Level: LevelWarning, Title: "Missing URL", Message: "Please enter a URL."}
	case errors.Is(err, builder.ErrInvalidColor):
		return Notification{Level: LevelError, Title: "Invalid Color", Message: "Please choose valid colors from palette."}
	default:
		return Notification{Level: LevelError, Title: "Error", Message: "QR generation failed:\n" + underlying(err)}
	}
}

// underlying strips the ErrRenderFailure prefix so the user sees the cause.
func underlying(err error) string {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range u.Unwrap() {
			if e != ErrRenderFailure {
				return e.Error()
			}
		}
	}
	return err.Error()
}
