// Package aggregates defines the session write boundary: its contract, inputs, assembly phases
// and the error codes every failure is reported with.
//
// Nothing here knows about gorm or HTTP.
package aggregates
