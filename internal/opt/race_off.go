//go:build !race

package opt

// Race reports whether the binary was built with -race.
const Race = false
