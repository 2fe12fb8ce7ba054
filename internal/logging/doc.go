// Package logging builds slog loggers for the subweave daemon and CLI.
// Two output formats are supported: a human-oriented console format and
// line-delimited JSON for log shipping. Subsystems attach a component
// attribute so console output reads "component: message k=v".
package logging
