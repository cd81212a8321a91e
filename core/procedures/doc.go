// Package procedures provides the built-in procedure library for the proc
// plugin: word transforms (revert, separate, upper, lower, trim), markup
// conversion (markdown, sanitize, html2md, select), composition through
// Chain, and CEL expressions compiled at runtime.
//
// Word transforms and markup procedures leave content they cannot handle
// unchanged.
package procedures
