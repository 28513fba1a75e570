// Package form binds field templates to live input controls and drives the
// validation engine against them. It is the consumer side of the dialog
// broker: the render layer feeds values and control signals in, and on a
// clean submit the form resolves the broker's pending request with the
// collected payload.
package form
