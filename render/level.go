package render

import (
	"fmt"
	"strings"

	skip2 "github.com/skip2/go-qrcode"
	"github.com/yeqown/go-qrcode/v2"
)

// Level is a QR error-correction level.
type Level int

const (
	LevelLow Level = iota
	LevelMedium
	LevelQuartile
	LevelHigh
)

// ParseLevel accepts low/medium/quartile/high and the single letters L/M/Q/H.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return LevelLow, nil
	case "medium", "m":
		return LevelMedium, nil
	case "quartile", "quart", "q":
		return LevelQuartile, nil
	case "high", "h", "":
		return LevelHigh, nil
	default:
		return 0, fmt.Errorf("unknown error correction level %q", s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelQuartile:
		return "quartile"
	default:
		return "high"
	}
}

func (l Level) encodeOption() qrcode.EncodeOption {
	switch l {
	case LevelLow:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelMedium:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	case LevelQuartile:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	}
}

func (l Level) recoveryLevel() skip2.RecoveryLevel {
	switch l {
	case LevelLow:
		return skip2.Low
	case LevelMedium:
		return skip2.Medium
	case LevelQuartile:
		return skip2.High
	default:
		return skip2.Highest
	}
}
