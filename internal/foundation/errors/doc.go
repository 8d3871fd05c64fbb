// Package errors provides the classified error primitives used across pagemill.
//
// A ClassifiedError carries a category, a severity and a retry strategy next
// to the usual message and cause. The pipeline uses severity to tell apart
// errors that stop the process (fatal), errors that abort the current pass
// (error) and per-item problems that are only reported (warning).
//
// Example usage:
//
//	err := errors.TemplateError("failed to load layouts").
//		WithContext("dir", layoutsDir).
//		Build()
package errors
