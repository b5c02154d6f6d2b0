package client

import "errors"

// Every failure of Searcher.Search other than cancellation wraps exactly
// one of these.
var (
	ErrNetwork             = errors.New("network error")
	ErrParse               = errors.New("parse error")
	ErrRenderTargetMissing = errors.New("render target missing")
)
