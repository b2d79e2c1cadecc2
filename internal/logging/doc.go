// Package logging wires log/slog for butler.
//
// Two handler formats are supported: a console handler producing
// "TIME LEVEL component: msg key=value" lines and a JSON handler for
// machine consumption. Component loggers standardize the component field and
// WithContext pulls run/source identifiers out of a processing context.
package logging
