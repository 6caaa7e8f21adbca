package unityfs

import "log/slog"

// Option configures a conversion.
type Option func(*converter)

// WithVariant selects the game variant, which decides how blocks carrying the
// LZHAM compression identifier are decoded. The default is VariantStandard.
func WithVariant(v Variant) Option {
	return func(c *converter) {
		c.variant = v
	}
}

// WithLogger sets the logger for conversion diagnostics, such as blocks whose
// decompressed size differs from the declared size. When unset, diagnostics
// are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *converter) {
		c.logger = logger
	}
}

// WithProgress registers a callback for progress updates.
func WithProgress(fn ProgressFunc) Option {
	return func(c *converter) {
		c.progress = fn
	}
}

// WithWorkers sets how many blocks are inflated concurrently (default: 1).
// Blocks never depend on each other's output, so any value is safe; the
// concatenated payload is always assembled in table order.
func WithWorkers(n int) Option {
	return func(c *converter) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}
