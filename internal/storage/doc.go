// Package storage persists pipeline checkpoints under a data directory.
//
// Layout:
//
//	raw/lists/raw_herb_list.json   herb descriptors from the listing page
//	raw/herbs_data/raw.jsonl       one extracted g_mapperData capture per line
//	raw/herbs_data/parsed.jsonl    one normalized herb record per line
//	output/HerbData<YYYYMMDD>.lua  the GatherMate2 database
//
// Every stage reads the previous checkpoint, so a stage can be re-run
// without fetching again.
package storage
