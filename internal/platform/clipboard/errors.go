package clipboard

import "errors"

var ErrUnsupported = errors.New("clipboard is not available on this host")
