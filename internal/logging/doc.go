// Package logging builds coldbd's zap logger (the coldb client does not
// log through it), grounded on
// go.uber.org/zap's component-logger idiom (Named child loggers per
// subsystem) rather than a single ungrouped logger, matching the pattern
// the rest of this retrieval pack uses for server-side zap wiring.
package logging
