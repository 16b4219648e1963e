// Package redisstore implements [store.Store] on Redis using
// github.com/redis/go-redis/v9. Keys are namespaced with a prefix and may
// carry an expiry, which suits short-lived trial saves shared between
// several game servers.
package redisstore
