// Package dialog implements the modal dialog broker: at most one dialog is
// active at a time, and opening one turns the modal into an asynchronous
// request/response exchange. The resolution channel settles exactly once per
// request; opening over a pending request settles the old future with an
// interruption outcome before the new request begins. A separate control
// channel broadcasts intra-dialog signals (submit, reset, switch) that never
// close the dialog.
package dialog
