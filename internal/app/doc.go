// Package app wires the application together: logger construction,
// specification loading, workflow assembly, and emission of the
// serialized workflow documents.
package app
