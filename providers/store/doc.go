// Package store defines the Store interface used to persist game sessions.
// A Store maps an opaque key to an opaque byte payload; callers own the
// encoding. Implementations must return [ErrNotFound] for a missing key so
// callers can tell "no save yet" apart from a storage failure.
// Bundled implementations live in the sibling packages
// [github.com/leofalp/tangshi/providers/store/inmemory],
// [github.com/leofalp/tangshi/providers/store/sqlitestore] and
// [github.com/leofalp/tangshi/providers/store/redisstore].
package store
