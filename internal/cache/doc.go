// Package cache enumerates the local cache directory that gets mirrored to the
// remote store. Every regular file below the cache root becomes an Entry whose
// key is the file path relative to the root's parent, written with forward
// slashes and a "./" prefix (./cache/football/fixtures). Entries are returned
// sorted by key so upload order never depends on filesystem ordering.
// The package also owns the SkipSet: relative paths that must never be
// uploaded no matter what the files contain.
package cache
