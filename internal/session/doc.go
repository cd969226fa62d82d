// Package session owns the mutable epidemic parameters of an interactive run.
//
// Every change goes through one synchronous handler: the new raw value is
// merged with the current parameters, normalized, the trajectory is
// recomputed on the session's fixed grid and handed to a Display. The UI
// event loop delivers one change at a time, so no locking is needed.
package session
