package vision

import "errors"

// UpstreamError means the provider call failed or returned no usable content.
type UpstreamError struct {
	err error
}

func (e *UpstreamError) Error() string {
	return e.err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.err
}

func NewUpstreamError(err error) error {
	return &UpstreamError{err: err}
}

// ParseError means the provider replied but the reply did not yield a JSON
// object matching the schema.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string {
	return e.err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.err
}

func NewParseError(err error) error {
	return &ParseError{err: err}
}

func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}

func IsParse(err error) bool {
	var parse *ParseError
	return errors.As(err, &parse)
}
