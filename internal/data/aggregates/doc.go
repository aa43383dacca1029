// Package aggregates implements the session aggregate on top of the table repos in
// internal/data/repos.
//
// The aggregate owns the transaction for every write that spans more than one table: a session
// and its shot samples are created together or not at all.
package aggregates
