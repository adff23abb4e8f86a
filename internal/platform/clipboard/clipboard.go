package clipboard

import (
	"github.com/atotto/clipboard"
)

// System writes to the host clipboard. Writes fail on hosts without a
// clipboard utility (headless servers, containers).
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (s *System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
