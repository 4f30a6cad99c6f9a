// Package workspace manages the wiki output directory.
//
// The layout is fixed: index.html at the root and one page per entity under
// gameobjects/<id>.html. Files are overwritten on every run, so generating the
// same snapshot twice leaves the tree byte-identical.
package workspace
