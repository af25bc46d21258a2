// Package memory provides the shared memory system agents read from and
// write to through the memory tools. The in-memory implementation is suited
// to tests and single-process deployments; swap in a persistent or semantic
// store by implementing the Store interface.
package memory
