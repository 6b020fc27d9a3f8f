package edge

import "errors"

var (
	ErrInvalidRewrite = errors.New("edge.invalid_rewrite_url")
	ErrNilRequest     = errors.New("edge.nil_request")
)
