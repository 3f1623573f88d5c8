package httpclient

import (
	"github.com/aleister1102/linkchecker/internal/common/errorwrapper"
)

// WrapError wraps an error raised while building or sending a request
func WrapError(err error, message string) error {
	return errorwrapper.WrapError(err, message)
}

// NewNetworkError reports a transport failure for url. The result matches
// errorwrapper.ErrNetworkFailure under errors.Is.
func NewNetworkError(url, message string, err error) error {
	return errorwrapper.NewNetworkError(url, message, err)
}
