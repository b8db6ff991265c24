package model

// Student is identified by a stable name, unique within a solve.
type Student struct {
	Name   string
	Gender Gender
}
