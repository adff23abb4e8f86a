package keys

import (
	"github.com/rs/zerolog/log"
)

type Clipboard interface {
	WriteText(text string) error
}

type Notifier interface {
	Success(message string) string
	Error(message string) string
}

// Copier copies private keys to a clipboard and reports the outcome as a
// toast. Failures are not retried.
type Copier struct {
	clipboard Clipboard
	notify    Notifier
}

func NewCopier(cb Clipboard, notify Notifier) *Copier {
	return &Copier{clipboard: cb, notify: notify}
}

// Copy returns the toast id and the clipboard error, if any.
func (c *Copier) Copy(key string) (string, error) {
	if err := c.clipboard.WriteText(key); err != nil {
		log.Warn().Err(err).Msg("clipboard write failed")
		return c.notify.Error("Failed to copy private key"), err
	}
	return c.notify.Success("Private key copied to clipboard"), nil
}
