package catalog

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrDuplicateCode    = errors.New("property code already in use")
)
