// Package logging configures slog output for commentwatch.
//
// Two formats are supported: a console handler that renders
// "timestamp LEVEL component: message key=value" lines for interactive
// use, and a JSON handler for machine consumption. Component loggers
// carry a standard "component" attribute so output from the worker
// bridge, session store, and CLI can be told apart.
package logging
