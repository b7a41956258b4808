// Package boot runs the simulated boot sequence shown before the language selector.
//
// A Sequencer walks an ordered list of steps on a scheduler. Each step reveals its text one
// rune at a time and holds for the step's duration before the next one starts. Completion
// happens exactly once, whichever comes first: the last step ending, the safety timeout, or a
// skip request. Every pending task is cancelled before the completion callback runs.
package boot
