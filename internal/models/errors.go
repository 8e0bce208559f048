package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"motofibra/catalog/internal/constants"
)

var (
	ErrValidation      = errors.New(constants.MsgValidationFailed)
	ErrPartNotFound    = errors.New(constants.MsgPartNotFound)
	ErrDetailsNotFound = errors.New(constants.MsgDetailsNotFound)
)

// ValidationError lists the rejected fields. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", constants.MsgValidationFailed, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DetailsNotFoundError names the part that lacks details.
type DetailsNotFoundError struct {
	PartID uint
}

func (e *DetailsNotFoundError) Error() string {
	return fmt.Sprintf("part %d: %s", e.PartID, constants.MsgDetailsNotFound)
}

func (e *DetailsNotFoundError) Is(target error) bool {
	return target == ErrDetailsNotFound
}
