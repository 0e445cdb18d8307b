package store

// Selector routes each request to the live backing. Selection happens once
// per request at entry; an operation never falls back mid-flight.
type Selector struct {
	durable  ProductStore
	fallback ProductStore
	health   *Health
}

// NewSelector builds a Selector. durable may be nil when the service runs
// without a configured durable store; every request then uses the fallback.
func NewSelector(durable, fallback ProductStore, health *Health) *Selector {
	return &Selector{durable: durable, fallback: fallback, health: health}
}

// Pick re-evaluates connection state and returns the backing to use for
// this request.
func (s *Selector) Pick() ProductStore {
	if s.durable != nil && s.health != nil && s.health.Up() {
		return s.durable
	}
	return s.fallback
}

// DurableUp reports the current connection flag, for health reporting.
func (s *Selector) DurableUp() bool {
	return s.durable != nil && s.health != nil && s.health.Up()
}
