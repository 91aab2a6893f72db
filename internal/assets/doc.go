// Package assets provides the stylesheets applied to generated HTML.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - styles from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// AssetResolver is what the converter uses: a style found under the custom
// base path wins, otherwise the embedded one with the same name is used.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names may not contain separators or dots. FilesystemLoader reads
// through an os.Root opened on styles/, which refuses symlinks leading out.
package assets
