// Package manifest reads package manifests (package.json and compatible JSON
// files) and writes a new version back into them. Writes touch only the
// version field: other fields and key order are kept, and the document is
// re-indented with two spaces.
package manifest
