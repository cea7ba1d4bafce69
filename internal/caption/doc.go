// Package caption converts WebVTT caption markup into the formats served to
// clients and decides which downloaded caption file a request refers to.
//
// Everything in this package is pure: no I/O, no shared state.
package caption
