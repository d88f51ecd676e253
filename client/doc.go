// Package client provides the enqueue-side half of the logging adapter:
// a middleware chain over descriptors being submitted, the
// TagPassthrough middleware that copies ambient tag values into the
// descriptor so they reappear in the executing process, and a small
// Client that runs the chain, encodes the descriptor, and hands it to
// the hosting framework's transport.
//
// The transport and broker are external collaborators; this package
// never implements queueing, persistence, or retries.
package client
