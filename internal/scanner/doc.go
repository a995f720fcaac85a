// Package scanner discovers the Markdown chapters of a book manuscript.
//
// Scan walks a root directory recursively and returns the relative paths of
// all .md files that belong in the generated summary. Exclusion is strictly
// name-based: a fixed denylist (build output such as _book, dependency
// directories such as node_modules and vendor, version control), the summary
// output file itself, and any caller-supplied extra names. Names are compared
// both with and without their extension, so a file literally named
// "node_modules.md" is excluded alongside the node_modules directory. This
// matches the behavior book authors already rely on and is deliberately not
// pattern matching.
//
// Dot-prefixed files and directories are always skipped, and symbolic links
// are never followed. The walk is read-only and fails on the first filesystem
// error it meets: an unreadable subtree means chapters may be missing, and a
// summary generated over a partially scanned book would hide that. There are
// no retries and no partial results; the caller surfaces the error and exits
// non-zero.
package scanner
