// Package builder validates the raw form fields collected by a front end and
// turns them into a generation request for the renderer.
package builder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fancyqr/fancyqr/style"
)

var (
	// ErrEmptyInput is returned when the URL field is blank after trimming.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidColor is returned when either color field fails to parse.
	ErrInvalidColor = style.ErrInvalidColor
)

// FormState is the raw, unvalidated contents of the generation form.
type FormState struct {
	URL        string `json:"url"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	Eye        string `json:"eye"`
	Body       string `json:"body"`
}

// DefaultFormState is the form as first shown to the user.
func DefaultFormState() FormState {
	return FormState{
		Foreground: style.Black.Hex(),
		Background: style.White.Hex(),
		Eye:        string(style.EyeSquare),
		Body:       string(style.BodyDefault),
	}
}

// Request is a validated, normalized generation request.
type Request struct {
	Payload    string
	Eye        style.EyeStyle
	Body       style.BodyStyle
	Foreground style.Color
	Background style.Color
}

// Build validates form and assembles a Request. The URL is checked first,
// then the foreground and background colors. Unknown eye or body tags are
// not an error; they resolve to the default style.
func Build(form FormState) (Request, error) {
	payload := strings.TrimSpace(form.URL)
	if payload == "" {
		return Request{}, fmt.Errorf("url: %w", ErrEmptyInput)
	}

	fg, err := style.ParseHex(form.Foreground)
	if err != nil {
		return Request{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := style.ParseHex(form.Background)
	if err != nil {
		return Request{}, fmt.Errorf("background: %w", err)
	}

	return Request{
		Payload:    payload,
		Eye:        style.ParseEyeStyle(form.Eye),
		Body:       style.ParseBodyStyle(form.Body),
		Foreground: fg,
		Background: bg,
	}, nil
}
