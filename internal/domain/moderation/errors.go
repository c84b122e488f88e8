package moderation

import "errors"

var (
	// Report errors
	ErrReportNotFound        = errors.New("report not found")
	ErrPostNotFound          = errors.New("post not found")
	ErrCannotReportOwnPost   = errors.New("cannot report your own post")
	ErrReportAlreadyResolved = errors.New("report already resolved")
	ErrInvalidReportCategory = errors.New("invalid report category")
)
