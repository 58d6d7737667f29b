// Package progress carries fold progress from the table builders to the
// presentation layers.
//
// Builders report through a ProgressCallback, a plain func(float64). The
// orchestration layer either wraps a channel (ChannelObserver) or fans a
// single callback out to several observers through a ProgressSubject.
// Freeze takes a snapshot of the registered observers so the hot loop never
// touches the subject's lock.
package progress
