/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an identity does not resolve to an entity.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals malformed input such as a bad page request.
	ErrValidation = errors.New("validation error")
	// ErrConstraintViolation signals an operation that would break a model invariant.
	ErrConstraintViolation = errors.New("constraint violation")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Invalid wraps ErrValidation with a formatted message.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// Violation wraps ErrConstraintViolation with a formatted message.
func Violation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConstraintViolation)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsConstraintViolation(err error) bool { return errors.Is(err, ErrConstraintViolation) }
