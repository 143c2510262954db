package registry

import "errors"

var ErrLocate = errors.New("application discovery failed")
