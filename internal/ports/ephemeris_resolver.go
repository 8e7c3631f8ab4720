package ports

// EphemerisResolver picks the ephemeris directory for an invocation.
// An empty result means the engine falls back to its built-in data.
type EphemerisResolver interface {
	Resolve(explicit string) string
}
