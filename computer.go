// computer.go - The run loop wiring processor, memory and host together

/*
Computer is the harness: it owns a Processor and a MemoryPort and drives
them one tick at a time. Each tick commits delay slots and executes one
instruction on the processor, then clocks the memory map's devices; when
the memory map reports an interrupt condition, the harness offers it to
the processor before the next tick. The loop ends the instant the memory
map's exit latch has been written.

Run paces that loop against a caller-supplied tick source rather than
free-running, so the same harness serves both an interactive terminal
session (paced by a time.Ticker to a human-perceptible rate) and a test
(paced by an unbuffered channel the test drives by hand).
*/

package main

import "time"

// Computer drives the fetch/execute/device loop until the guest program
// writes to ExitReg.
type Computer struct {
	CPU *Processor
	Mem *MemoryMap
}

// NewComputer wires a processor and memory map together and resets the
// processor's program counter from the ROM's reset vector.
func NewComputer(cpu *Processor, mem *MemoryMap) *Computer {
	cpu.Reset(mem)
	return &Computer{CPU: cpu, Mem: mem}
}

// Step advances the machine by exactly one tick: one processor clock, one
// memory/device clock, and - if the device clock raised an interrupt
// condition - one offer of that interrupt to the processor. Returns true
// once the guest has requested termination.
func (c *Computer) Step() bool {
	c.CPU.Clock(c.Mem)
	if c.Mem.Clock() {
		c.CPU.IRQ(c.Mem)
	}
	return c.Mem.ShouldExit()
}

// Run steps the machine once per tick received from tick, calling afterTick
// (if non-nil) after every step, until the guest requests termination or
// tick is closed.
func (c *Computer) Run(tick <-chan time.Time, afterTick func()) {
	for range tick {
		done := c.Step()
		if afterTick != nil {
			afterTick()
		}
		if done {
			return
		}
	}
}
