// Package pipeline runs a site build: it loads source files, dispatches them
// to parsers and generators, runs the one-time generators over the frozen
// result and writes everything to the output directory.
//
// Stages run strictly in order on one goroutine:
//
//	load -> parse -> generate -> aggregate -> write -> static
//
// A failing stage aborts the build. Nothing is written before the write
// stage, so content errors leave the output directory untouched.
package pipeline
