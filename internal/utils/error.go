package utils

import (
	"errors"
	"strings"
)

// CombineErrors combines errors into a single error with a multiline message, nil errors are ignored.
// nil is returned if all errors are nil.
func CombineErrors(errs ...error) error {
	var messages []string

	for _, err := range errs {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	if len(messages) == 0 {
		return nil
	}
	return errors.New(strings.Join(messages, "\n"))
}

func Must[T any](obj T, err error) T {
	if err != nil {
		panic(err)
	}
	return obj
}
