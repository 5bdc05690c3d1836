// errors.go
//
// CSE Whiteboard, a customer tracking service for customer success engineers.
// Copyright (c) 2026 CSE Whiteboard authors.

package services

import "errors"

// ErrNotFound covers both "row does not exist" and "row belongs to another
// user". The two cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("not found")
