//go:build race

package opt

// Race reports whether the binary was built with -race.
// Timing-sensitive tests widen their bounds when it is set.
const Race = true
