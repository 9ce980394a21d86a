package diffconf

import "errors"

var ErrConfig = errors.New("config error")
