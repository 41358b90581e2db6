package transcribe

import (
	"context"
	"io"
)

// Provider converts recorded audio into text. Implementations are
// best-effort: silence or unintelligible audio yields an empty string,
// not an error.
type Provider interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
