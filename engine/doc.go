// Package engine executes data pipelines: it orders a pipeline's DAG with
// Kahn's algorithm, dispatches each node to the matching operator (transform,
// filter, join, aggregate) or to the injected Connector Port (source,
// destination), materializes every node's output dataset in a per-run
// execution context, and assembles run-level stats, errors, and output.
//
// A single run is strictly sequential in topological order. Independent
// runs of the same immutable Pipeline definition may execute concurrently;
// each gets its own ExecutionContext and nothing mutable is shared.
package engine
