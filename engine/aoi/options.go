package aoi

// Option configures a CoordSystem
type Option func(s *CoordSystem)

// WithCapacity preallocates n node slots
func WithCapacity(n int) Option {
	return func(s *CoordSystem) {
		if n > 0 {
			s.nodes = make([]coordNode, 0, n)
		}
	}
}

// WithVerify runs Verify after every outermost operation and panics on error
func WithVerify(verify bool) Option {
	return func(s *CoordSystem) {
		s.verify = verify
	}
}
