package observability

type Metrics interface {
	ObserveLookup(entity, source string, durMs float64)
	ObserveMutation(entity, op string, durMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveConsumer(processMs float64, ok bool)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, string, float64)    {}
func (Noop) ObserveMutation(string, string, float64)  {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveConsumer(float64, bool)            {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
