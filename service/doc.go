// Package service executes ACI actions.
//
// A Service pairs a Transport with an optional default server. Execute and
// ExecuteOn validate their arguments, send the action, decode the response
// stream with a caller-supplied Decoder and always close the stream before
// returning.
//
// Argument problems are programming errors and come back as the sentinel
// errors in this package, unwrapped and before any I/O. Everything that goes
// wrong once the action is on its way (the network, the exchange, or
// decoding) comes back as an Error whose Err field is the original failure.
//
// A Service is plain mutable configuration. Concurrent Execute calls are
// safe as long as nobody calls SetTransport or SetServerDetails at the same
// time; callers that need to switch servers at runtime should pass the
// server explicitly to ExecuteOn instead.
package service
