package google

import (
	"errors"
	"fmt"

	"google.golang.org/genai"

	ai "github.com/zootherapy/menagerie"
)

// BlockedError is returned when Gemini refuses a prompt on safety grounds.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("google: prompt blocked: %s", e.Reason)
}

// Category reports blocked prompts as user input errors.
func (e *BlockedError) Category() ai.ErrorCategory {
	return ai.ErrorUserInput
}

// StatusCode returns 0; blocking is not an HTTP failure.
func (e *BlockedError) StatusCode() int {
	return 0
}

// wrapError attaches a status-based category to GenAI API errors.
// genai.APIError carries no headers, so only the status code is used.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	return ai.NewError(err.Error(), apiErr.Code, err)
}
