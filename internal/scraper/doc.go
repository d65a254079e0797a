// Package scraper fetches Wowhead pages and extracts the JSON embedded in them.
//
// Two fragments are used: the herb listing's Listview "data" array, and the
// g_mapperData object on each herb page that holds node coordinates per map.
// Extraction only locates and cuts out the fragment; parsing the mapper data
// is left to the herb package so that a missing marker and malformed content
// fail separately.
package scraper
