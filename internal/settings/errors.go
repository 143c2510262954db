package settings

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrInvalid = fmt.Errorf("invalid build settings: %w", errdefs.ErrInvalidArgument)
	ErrRead    = errors.New("cannot read build settings")
)
