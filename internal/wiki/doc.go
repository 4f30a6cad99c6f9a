// Package wiki turns a loaded snapshot into wiki pages.
//
// Page builders shape one entity into the data a template needs, resolving
// every referenced identifier into a display name and a link. Dispatch picks
// the builder for an entity's primary kind, BuildIndex buckets the whole
// snapshot for the homepage, and Generator drives a complete run: render each
// page, write it, then write the index last.
package wiki
