package usecase

import "errors"

var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrSkillRecordNotFound = errors.New("skill record not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")

	ErrSkillAlreadyExists   = errors.New("skill already exists")
	ErrConcurrentUpdate     = errors.New("concurrent update")
	ErrAutoAssignInProgress = errors.New("auto-assignment already in progress")
)
