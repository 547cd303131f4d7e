// Package repository implements the store adapters over MySQL. Sentinel
// errors defined here let handlers distinguish user-correctable
// failures from genuine storage faults; anything else that bubbles out
// of a repository is treated as a server error. Absence of data is
// signalled with sql.ErrNoRows and is never a server error.
package repository

import "errors"

// ErrEmailExists is returned by UserRepo.Create when the email is
// already registered. Handlers translate this into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")
