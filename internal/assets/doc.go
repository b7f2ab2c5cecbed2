// Package assets provides named style sheets for rendered HTML.
//
// Styles are looked up in two places:
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - styles compiled into the binary (academic, plain)
//	    ├── FilesystemLoader  - {dir}/{name}.css on disk
//	    └── Resolver          - custom directory first, embedded as fallback
//
// Names are bare identifiers: no extension, separators, or dots. The
// filesystem loader resolves symlinks and refuses paths that leave its
// directory.
package assets
