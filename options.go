package scenexml

// Option configures a load.
type Option interface{ apply(*loadOptions) }

// Parameter is one (name, value) substitution pair applied to $name
// references in attribute values.
type Parameter struct {
	Name  string
	Value string
}

// DefaultIncludeLimit bounds nested <include> recursion.
const DefaultIncludeLimit = 15

// DefaultVariant is used when the caller does not select one.
const DefaultVariant = "scalar_rgb"

type loadOptions struct {
	variant      string
	parameters   []Parameter
	resolver     Resolver
	includeLimit int
	writeUpdate  bool
}

type optionFunc func(*loadOptions)

func (f optionFunc) apply(cfg *loadOptions) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithVariant selects the plugin variant, e.g. "scalar_rgb" or
// "scalar_mono". Monochrome behavior is derived from the variant name.
func WithVariant(variant string) Option {
	return optionFunc(func(cfg *loadOptions) {
		cfg.variant = variant
	})
}

// WithParameters appends substitution parameters.
func WithParameters(params ...Parameter) Option {
	return optionFunc(func(cfg *loadOptions) {
		cfg.parameters = append(cfg.parameters, params...)
	})
}

// WithParameter appends a single substitution parameter.
func WithParameter(name, value string) Option {
	return WithParameters(Parameter{Name: name, Value: value})
}

// WithResolver sets a custom include-file resolver.
func WithResolver(r Resolver) Option {
	return optionFunc(func(cfg *loadOptions) {
		cfg.resolver = r
	})
}

// WithIncludeLimit overrides the include recursion limit.
func WithIncludeLimit(n int) Option {
	return optionFunc(func(cfg *loadOptions) {
		cfg.includeLimit = n
	})
}

// WithWriteUpdate controls whether LoadFile writes an upgraded document
// back to disk, keeping a backup copy of the original.
func WithWriteUpdate(b bool) Option {
	return optionFunc(func(cfg *loadOptions) {
		cfg.writeUpdate = b
	})
}

func applyOptions(opts []Option) *loadOptions {
	cfg := &loadOptions{
		variant:      DefaultVariant,
		includeLimit: DefaultIncludeLimit,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}
