// Package cli implements the command-line interface for herb-scraper.
//
// Running herb-scraper without arguments executes every stage. The list,
// fetch, parse and convert subcommands run a single stage from the previous
// stage's checkpoint, and inspect summarizes the parsed checkpoint per map.
package cli
