package custom_errors

import "errors"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
	ErrCacheMiss        = errors.New("cache miss")
	ErrDatabaseQuery    = errors.New("database query error")
	ErrDatabaseScan     = errors.New("database scan error")
	ErrValidationFailed = errors.New("validation failed")
	ErrNoUpdateRows     = errors.New("no fields to update")
)
