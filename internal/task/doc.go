// Package task defines the schedulable units of a workflow: LAMMPS
// simulation runs, Packmol packing jobs, and force-field simulation runs.
// A Task is constructed once by its factory and never mutated afterwards;
// dependencies are declared at construction as parent references.
package task
