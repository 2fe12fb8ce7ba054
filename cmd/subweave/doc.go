// Command subweave is the operator CLI: queue inspection, manual file
// intake, one-shot caption finalization, configuration utilities, and a
// foreground daemon runner.
package main
