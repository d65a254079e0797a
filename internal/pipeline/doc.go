// Package pipeline runs the herb scraper stages in order: fetch the herb
// list, fetch each herb page and capture its map data, normalize the
// captures into per-herb records, and convert the records into a
// GatherMate2 Lua database.
//
// Stages talk to each other only through the checkpoint files of the
// storage package. Per-herb failures are logged, counted and skipped; a run
// always finishes the remaining herbs.
package pipeline
