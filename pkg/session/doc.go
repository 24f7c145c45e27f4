/*
Package session owns live machines on behalf of concurrent callers.

A Manager creates engines from programs held in a ports.ProgramStore and
serializes every operation on a given session behind a per-ID mutex (and,
optionally, a distributed lock), so one Engine is never stepped from two
goroutines at once. Machine state lives only in memory; a session does not
survive a restart.
*/
package session
