package repository

import "errors"

var (
	// ErrDuplicateInvoice is returned when an invoice id is already in history
	ErrDuplicateInvoice = errors.New("invoice id already exists")
	// ErrConcurrentUpdate is returned when an atomic update kept losing races
	ErrConcurrentUpdate = errors.New("concurrent update, retries exhausted")
)
