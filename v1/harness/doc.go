// Package harness drives two participants through repeated critical-section
// cycles on a Peterson lock and observes whether mutual exclusion held. The
// lock itself never reports violations; they are only visible to outside
// instrumentation, which is what this package provides. Tests, examples and
// the bench CLI all consume the same Runner.
package harness
