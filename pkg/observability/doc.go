/*
Package observability provides tools for monitoring termfolio sessions.

It turns the domain observer hooks (phase changes, commands, navigation) into structured
log lines and Prometheus metrics, and instruments the HTTP adapter.
*/
package observability
