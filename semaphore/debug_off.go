//go:build !semdebug

package semaphore

const debugAssertions = false
