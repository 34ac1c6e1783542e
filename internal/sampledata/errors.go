package sampledata

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid sample config")
	ErrUpload        = errors.New("workbook upload failed")
)
