// Package transport defines how ACI actions reach a server and how the raw
// reply comes back.
//
// A Transport sends one action and hands back a ResponseStream. It never
// interprets the payload; it fails only for I/O reasons or, with a
// *ProtocolError, for problems with the exchange itself such as a non-2xx
// status. Concrete transports live in subpackages, e.g. transport/http.
//
// Middlewares wrap a Transport with behavior that is independent of the wire,
// like logging, instrumentation, circuit breaking and rate limiting.
package transport
