/*
Package session implements session management and persistence orchestration.

It serializes access to stored terminal sessions: every read-modify-write of a session
runs under a per-session in-process lock and, when configured, a distributed lock so
that several server replicas can share one Redis store.
*/
package session
