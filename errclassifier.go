// SPDX-License-Identifier: GPL-3.0-or-later

package nut

import "github.com/aramperes/nut-go/internal/errclass"

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g., "ETIMEDOUT",
// "ECONNRESET") that facilitate systematic analysis of connection failures,
// independent of the typed [ErrKind] taxonomy used for protocol-level ERR
// sentences.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
//
// This allows using simple functions as classifiers:
//
//	op.ErrClassifier = ErrClassifierFunc(errclass.New)
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier classifies connection-level errors (timeouts, refused
// connections, resets, and the like) via [errclass.New].
var DefaultErrClassifier = ErrClassifierFunc(errclass.New)
