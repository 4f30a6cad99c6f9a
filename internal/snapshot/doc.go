// Package snapshot loads a serialized world snapshot into an addressable,
// read-only arena of entities.
//
// The on-disk shape is
//
//	{ "gameobjects": { "<id>": { "id": 1, "name": "...", "parent": 7, "components": { ... } } } }
//
// Entity order follows the document order of the gameobjects object so that
// every consumer iterates the world the same way on every run. Each entity's
// primary Kind is computed once at load time from its component keys.
//
// Components stay as raw JSON until a page asks for one; the typed records in
// components.go describe the fields the wiki reads.
package snapshot
