// Package errors provides the classified error primitives used across simwiki.
//
// Every failure that reaches the CLI carries a category (snapshot, not_found,
// unimplemented, config, filesystem, ...), a severity and a free-form context
// map. The CLI adapter turns those into an exit code and a diagnostic line.
//
// Example usage:
//
//	err := errors.NotFoundError("referenced entity not in snapshot").
//		WithContext("entity_id", 12).
//		WithContext("ref_id", 40).
//		Build()
package errors
