// Package guard offers a marker that lets value objects, commands and queries
// detect whether they were built through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not meaningful.
// Only NewConstructorGuard produces a guard that validates, so a struct literal
// such as commands.CreateParcelCommand{} is rejected by its Validate method.
//
// Example:
//
//	type ChangeParcelStatusCommand struct {
//	    parcelID kernel.UUID
//	    status   string
//	    guard    guard.ConstructorGuard
//	}
//
//	func (c ChangeParcelStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrChangeParcelStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
