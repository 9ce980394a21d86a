package xmltree

import "errors"

var (
	ErrParse  = errors.New("xml parse error")
	ErrNoRoot = errors.New("no root element")
	ErrXPath  = errors.New("xpath error")
)
