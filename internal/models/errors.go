package models

import "errors"

// ErrEmailExists is returned when an admin profile document already exists
// for the target UID or email. Handlers map it to 409.
var ErrEmailExists = errors.New("email already registered")
