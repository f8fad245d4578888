package file

import "errors"

var (
	ErrFileNotFound     = errors.New("file not found")
	ErrNotFileOwner     = errors.New("only the file owner can delete this file")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
	ErrEmptyUpload      = errors.New("uploaded file is empty")
	ErrInvalidSignature = errors.New("download link is invalid or expired")
)
