package async

import "errors"

var (
	ErrAwaitCancelled = errors.New("async: context done before future settled")
	ErrPanic          = errors.New("async: computation panicked")
)
