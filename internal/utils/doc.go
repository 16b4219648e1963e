// Package utils provides low-level helpers shared by the provider and
// middleware packages: [DoPostSync] for synchronous JSON round-trips with a
// chat-completion API, and [TruncateString] for keeping model output out of
// log lines at full length.
package utils
