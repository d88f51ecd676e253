// Package job defines the descriptor consumed by the logging adapter,
// the worker registry that resolves class names to entry points and
// declared parameter names, and the wire codecs that carry descriptors
// across the client → broker → worker boundary.
//
// A Descriptor is deliberately a flat map rather than a struct: the
// hosting framework owns the descriptor format, and the adapter must
// degrade gracefully when fields are missing or malformed instead of
// failing to decode.
package job
