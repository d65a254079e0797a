// Package gathermate builds and writes GatherMate2 node databases.
//
// GatherMate2 keys each node by a packed integer holding the node's x and y
// map position as 4-digit fractions, grouped per uiMapId. Build folds
// normalized herb records into a Table and WriteLua emits it as the Lua
// table literal the addon loads.
package gathermate
