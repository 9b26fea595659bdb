// Package validation binds request data and turns validator failures into
// 400 responses with per-field errors.
package validation
