package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrTaskNotFound struct {
	error
}

func NewErrTaskNotFound(id uuid.UUID) *ErrTaskNotFound {
	return &ErrTaskNotFound{fmt.Errorf("task %s not found", id)}
}

type ErrEmptyPostcode struct {
	error
}

func NewErrEmptyPostcode() *ErrEmptyPostcode {
	return &ErrEmptyPostcode{fmt.Errorf("bad request: postcode is required")}
}
