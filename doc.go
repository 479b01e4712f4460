// Package calculator evaluates arithmetic expressions over dynamically typed
// values.
//
// A value is an Integer, a Real, or a Text. "2 + 3 * 4" is 14, "5 / 2" is 2,
// "5 / 2.0" is 2.5, and "hi * 3" is the text "hihihi". Anything that isn't an
// operator or a bracket is part of a literal, and a literal that names a
// variable takes that variable's value; otherwise it is read as an integer, a
// real (a decimal comma works too), or, failing both, as text.
//
// Spaces and empty brackets never split a literal: "1 000" and "1()000" are
// both 1000.
package calculator
