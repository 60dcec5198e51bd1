package rules

// ResolveModuleCount merges a device's declared module count with a rule's
// fallback: the declared count wins when positive, otherwise a positive
// fallback is used. A result of 0 signals the mapper that the device has
// no usable module count, it is never a valid width.
func ResolveModuleCount(declared, fallback int) int {
	if declared > 0 {
		return declared
	}
	if fallback > 0 {
		return fallback
	}
	return 0
}
