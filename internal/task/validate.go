package task

import (
	"errors"
	"slices"
	"strings"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/todo"
)

// NotFound returns the error reported when a reference names no item.
func NotFound(ref string) *clierr.Error {
	return clierr.Newf(clierr.TodoNotFound, "item not found: %s", ref).
		WithDetails(map[string]any{"ref": ref})
}

// ValidateRef returns a CLIError for an unusable reference.
func ValidateRef(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidRef, "invalid item reference %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateTitle checks that a title is not blank.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return clierr.New(clierr.InvalidInput, "title is required")
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed, reporting code otherwise.
func ValidateOneOf(code, field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return clierr.Newf(code, "invalid %s %q", field, value).
		WithDetails(map[string]any{
			field:     value,
			"allowed": allowed,
		})
}

// FromDispatch converts reducer and decoder errors to CLI errors. Errors that
// are already CLI errors, and storage failures, pass through unchanged.
func FromDispatch(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, todo.ErrTitleRequired):
		return clierr.New(clierr.InvalidInput, "title is required")
	case errors.Is(err, todo.ErrUnknownAction):
		return clierr.New(clierr.UnknownAction, err.Error())
	case errors.Is(err, todo.ErrMalformedAction):
		return clierr.New(clierr.MalformedAction, err.Error())
	case errors.Is(err, todo.ErrIDExhausted):
		return clierr.Wrap(clierr.InternalError, "generating id", err)
	}
	if _, ok := clierr.As(err); ok {
		return err
	}
	return clierr.Wrap(clierr.StorageError, "saving task list", err)
}
