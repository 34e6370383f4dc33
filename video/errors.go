package video

import "errors"

// ErrScreenNotCompiled is returned when screen support was not compiled in.
var ErrScreenNotCompiled = errors.New("framebuffer display not compiled in (build with -tags=screen)")
