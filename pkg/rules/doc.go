// Package rules implements selector-rule resolution for panel layout:
// matching a device signature against the ordered selector rule set,
// the legacy device-key fallback index, and module count resolution.
//
// Resolution is a pure transform: identical inputs always produce the
// same winning rule and ambiguity count, because the resolver sorts the
// rule set by (priority, source block, visibility) into a documented
// total order before matching.
package rules
