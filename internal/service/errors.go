package service

import "fmt"

var (
	ErrInvalidFilter = fmt.Errorf("invalid filter request")
	ErrPublish       = fmt.Errorf("cannot publish entries")
)
