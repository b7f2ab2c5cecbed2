package assets

import "errors"

// Sentinel errors for style loading.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
	ErrInvalidBasePath  = errors.New("invalid style directory")
	ErrAssetRead        = errors.New("failed to read style")
	ErrPathTraversal    = errors.New("path traversal detected")
)
