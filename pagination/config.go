package pagination

// Config bounds every request handled by an Engine.
type Config struct {
	// DefaultLimit is used when the caller asks for a limit <= 0.
	DefaultLimit int `yaml:"default_limit"`
	// MaxLimit caps the page size; larger values are clamped, not rejected.
	MaxLimit int `yaml:"max_limit"`
	// TieBreakField is appended to every sort that does not already contain it.
	// It must be unique per document so cursor windows never skip or repeat items.
	TieBreakField string `yaml:"tie_break_field"`
}

// DefaultConfig returns limit 10 (max 100) with `_id` as the tie-break field.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:  10,
		MaxLimit:      100,
		TieBreakField: "_id",
	}
}

// withDefaults fills zero values so a partially populated Config is still usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxLimit <= 0 {
		c.MaxLimit = d.MaxLimit
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	if c.TieBreakField == "" {
		c.TieBreakField = d.TieBreakField
	}
	return c
}
