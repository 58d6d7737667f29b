// Package logging provides the logging interface used by the application
// layers of rnafold. The folding core never logs; orchestration, calibration
// and the GC controller log through a Logger backed by zerolog.
package logging
