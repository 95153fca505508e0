// Package errors provides the classified error primitives used across docnav.
//
// Every failure the navigation build can report is a ClassifiedError carrying a
// category (config, validation, filesystem, plugin, ...), a severity and a small
// structured context identifying the offending page or configuration entry.
// Errors are built with the fluent ErrorBuilder:
//
//	err := errors.ValidationError("page has no url").
//		WithContext("index", i).
//		WithContext("source", page.Source).
//		Build()
//
// The CLIErrorAdapter turns classified errors into exit codes and log lines.
package errors
