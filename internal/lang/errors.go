package lang

import "errors"

// ErrInvalid indicates a language the news endpoint does not serve.
var ErrInvalid = errors.New("invalid news language")
