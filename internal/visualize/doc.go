// Package visualize renders text with per-token background colors.
//
// Spans reconstructs where each decoded token sits in the original text
// using a cursor-and-search heuristic; Render prints the text with the
// spans wrapped in a cycling ANSI color palette. Positions are a best
// effort: tokens whose bytes split a multi-byte character are anchored
// where the cursor happens to be.
package visualize
