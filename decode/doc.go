// Package decode provides service.Decoders for common ACI response shapes.
//
// Decoders report failures as *Error, whose Code separates a stream that
// could not be read, a payload that could not be parsed, and a well-formed
// response in which the server itself reported an error.
package decode
