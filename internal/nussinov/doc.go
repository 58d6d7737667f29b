// Package nussinov predicts RNA secondary structure by maximizing the number of
// nested, complementary base pairs (Nussinov dynamic programming).
//
// The package exposes two coupled operations:
//
//   - BuildScoreTable fills an n×n table where cell (i, j) holds the best
//     pairing score for the sub-sequence i..j. Cells are filled by increasing
//     substring length, optionally in parallel across each diagonal.
//   - Reconstruct walks a finished table from (0, n-1) down to the base cases
//     and returns one optimal pairing together with its dot-bracket string.
//
// Ties during traceback are broken in a fixed order: leave i unpaired, leave j
// unpaired, pair i with j, then the first bifurcation point. The order decides
// which of several optimal structures is returned and is part of the contract.
//
// Folding strategies (sequential and diagonal-parallel) implement the Folder
// interface and are registered in a FolderFactory so that the orchestration
// layer can run and cross-check them.
package nussinov
