package xmlstream

// Option configures the xmlstream reader.
type Option func(*options)

type options struct {
	maxDepth     int
	maxTokenSize int
	strict       bool
}

// MaxDepth limits element nesting depth. Zero disables the limit.
func MaxDepth(value int) Option {
	return func(o *options) {
		o.maxDepth = value
	}
}

// MaxTokenSize limits the size in bytes of a single character data token.
// Zero disables the limit.
func MaxTokenSize(value int) Option {
	return func(o *options) {
		o.maxTokenSize = value
	}
}

// Strict toggles encoding/xml strict mode. Readers are strict by default.
func Strict(value bool) Option {
	return func(o *options) {
		o.strict = value
	}
}

func buildOptions(opts ...Option) options {
	o := options{strict: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
