// Package model defines the shared vocabulary for dialog-driven forms: dialog
// kinds, input kinds, validation rule keys, and the field descriptors the
// template provider emits. The types are plain data with value semantics so
// every other package can exchange them without coupling.
package model
