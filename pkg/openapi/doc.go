// Package openapi overlays validation constraints from the game service's
// OpenAPI document onto dialog field descriptors. The backend contract is the
// source of truth for bounds like board-size limits and password length; the
// decorator keeps the client templates aligned with it without hardcoding.
package openapi
