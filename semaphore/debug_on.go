//go:build semdebug

package semaphore

// Builds with the semdebug tag check constructor preconditions that normal
// builds let through.
const debugAssertions = true
