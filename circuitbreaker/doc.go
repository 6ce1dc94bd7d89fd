// Package circuitbreaker implements the circuit breaker pattern for
// transports.
//
// Circuit breakers prevent thundering herds, and improve resiliency against
// intermittent errors. A breaker that is open fails the action before it is
// sent; the pipeline reports that as an ordinary transport failure.
package circuitbreaker
