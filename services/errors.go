// services/errors.go
package services

import "errors"

// Every workflow failure the controllers can show the user. Controllers
// translate these with errors.Is; anything else coming out of a service is a
// storage failure and surfaces as ErrStorage after the transaction rolls back.
var (
	ErrNotFound           = errors.New("no matching record found")
	ErrNoListYet          = errors.New("no appointment list has been created for today")
	ErrListExists         = errors.New("appointment list already created for today")
	ErrAlreadyRegistered  = errors.New("patient is already registered on today's list")
	ErrCapacityExceeded   = errors.New("today's list is full, please register tomorrow")
	ErrNotRegisteredToday = errors.New("patient is not on today's appointment list")
	ErrRecordExists       = errors.New("examination record already exists for this patient today")
	ErrMedicineNotFound   = errors.New("no medicine with that name")
	ErrInvalidQuantity    = errors.New("quantity must be a positive whole number")
	ErrMissingFields      = errors.New("symptoms and diagnosis are both required")
	ErrWrongDay           = errors.New("examination record is not from today")
	ErrAlreadyPaid        = errors.New("this examination has already been paid")
	ErrStorage            = errors.New("storage error")
)

// storageErr wraps an unexpected database error so callers still match
// ErrStorage while logs keep the cause.
func storageErr(err error) error {
	return errors.Join(ErrStorage, err)
}
