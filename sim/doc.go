// Package sim provides the discrete-event simulation kernel for the switch simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - process.go: Process handles and the Behavior resume contract (Timeout, Wait, Done)
//   - simulator.go: the clock, the (time, seq)-ordered event loop and the terminal condition
//   - resource.go: Resource, a bounded-concurrency gate with a FIFO wait queue
//   - container.go: Container, a level bounded by a capacity with blocking put/get
//
// # Execution model
//
// Processes are explicit state machines. The simulator resumes one process at a
// time; the step runs until it yields a wake condition. A process suspends only
// by sleeping (Timeout), by parking on a Resource or Container it could not be
// served by immediately (Wait), or by completing (Done). Resources resume
// parked processes through the event queue at the current tick, behind
// everything already due, so same-tick ordering is always FIFO by scheduling
// order and runs are reproducible.
//
// Run stops the instant the terminal process completes. Whatever is still
// queued is abandoned: it is not resumed and gets no cleanup callback.
//
// # Sub-packages
//   - sim/netswitch/: the switch model (RX/TX populations, FIFO buffer, overflow monitor)
//   - sim/trace/: dispatch trace recording
package sim
