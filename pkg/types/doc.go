// Package types defines the core types used throughout eltool.
// This includes the device signature and raw device read from a drawing
// selection, selector and legacy mapping rules, and the mapped device and
// placement row structures produced by the layout engine.
package types
