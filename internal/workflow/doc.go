// Package workflow assembles simulation tasks into validated dependency
// graphs for an external execution engine. The assemblers translate
// high-level simulation intent (a template plus run settings, or a packing
// job chained into a force-field run) into a Workflow: a set of tasks
// where each task carries its own parent references. Assembly is pure
// graph construction; scheduling, execution and retries belong to the
// engine the serialized workflow is handed to.
package workflow
