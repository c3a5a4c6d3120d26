package colour

// Option configures a colour at construction time.
type Option func(*options)

type options struct {
	info      Info
	alpha     float64
	hasAlpha  bool
	precision int
}

func newOptions(opts []Option) options {
	o := options{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName sets the colour's name.
func WithName(name string) Option {
	return func(o *options) { o.info.Name = name }
}

// WithDescription sets the colour's description.
func WithDescription(description string) Option {
	return func(o *options) { o.info.Description = description }
}

// WithMetadata sets the colour's metadata. The map is copied.
func WithMetadata(metadata map[string]any) Option {
	return func(o *options) { o.info.Metadata = metadata }
}

// WithInfo sets name, description and metadata at once.
func WithInfo(info Info) Option {
	return func(o *options) { o.info = info }
}

// WithAlpha sets the alpha channel. It overrides any alpha carried by the
// value itself, such as the last two digits of an 8 digit hex string.
func WithAlpha(alpha float64) Option {
	return func(o *options) {
		o.alpha = alpha
		o.hasAlpha = true
	}
}

// WithPrecision sets the number of decimal places derived HSL values are rounded to.
func WithPrecision(places int) Option {
	return func(o *options) { o.precision = places }
}
