// Package templates holds the embedded HTML layouts for wiki pages and the
// renderer that fills them with page data.
//
// Every page template is parsed together with the shared base layout, so
// each page gets its own template namespace while sharing helper blocks such
// as link lists and trait tables. Execution uses missingkey=error so that a
// page struct missing a field the layout expects fails loudly.
package templates
