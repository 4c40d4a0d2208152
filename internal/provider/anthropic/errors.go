package anthropic

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"

	ai "github.com/zootherapy/menagerie"
)

// wrapError attaches a status-based category to Anthropic API errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewError(err.Error(), apiErr.StatusCode, err)
}
