// Package apperrors defines the application error types of rnafold and maps
// them, together with the folding core's sentinel errors, to process exit
// codes.
//
// Every wrapping type implements Unwrap so errors.Is and errors.As see
// through it.
package apperrors
