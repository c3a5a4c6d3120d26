package group

import "github.com/jmylchreest/colourcamp/pkg/colour"

// Option configures a group at construction time.
type Option func(*options)

type options struct {
	info colour.Info
}

// WithName sets the group's name.
func WithName(name string) Option {
	return func(o *options) { o.info.Name = name }
}

// WithDescription sets the group's description.
func WithDescription(description string) Option {
	return func(o *options) { o.info.Description = description }
}

// WithMetadata sets the group's metadata. The map is copied.
func WithMetadata(metadata map[string]any) Option {
	return func(o *options) { o.info.Metadata = metadata }
}

// WithInfo sets name, description and metadata at once.
func WithInfo(info colour.Info) Option {
	return func(o *options) { o.info = info }
}
