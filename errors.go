package easel

import "github.com/agiangrant/easel/host"

// Errors returned by New. Match them with errors.Is.
var (
	ErrSurfaceUnavailable        = host.ErrSurfaceUnavailable
	ErrHostServiceUnavailable    = host.ErrHostServiceUnavailable
	ErrElementConstructionFailed = host.ErrElementConstructionFailed
)
