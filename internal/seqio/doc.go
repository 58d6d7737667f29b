// Package seqio reads RNA sequences from FASTA files, raw text and stdin, and
// generates random sequences for benchmarks.
package seqio
