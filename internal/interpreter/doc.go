// Package interpreter maps free-form chat messages and pipe-delimited
// shorthand commands onto structured calendar operations.
//
// It is a best-effort pattern matcher, not a natural-language system. The
// grammar rules are applied in a fixed priority order and the first match
// wins; that ordering is part of the package contract and must not change,
// or messages matching several rules would resolve differently.
package interpreter
