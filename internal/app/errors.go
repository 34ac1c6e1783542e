package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrNoSnapshot      = errors.New("no workbook snapshot loaded")
	ErrAthleteNotFound = errors.New("athlete not found")
)
