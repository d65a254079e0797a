// Package herb models herb descriptors and node location records, and
// normalizes the per-herb map data scraped from Wowhead.
//
// Raw captures hold Wowhead's g_mapperData object, keyed by an internal map
// key. NormalizeMapperData re-keys every block by its own uiMapId, removes
// duplicate coordinate pairs and rescales percentages to fractions. An
// Aggregator folds captures into one Record per herb name, resolving the
// GatherMate2 node id through a Resolver.
package herb
