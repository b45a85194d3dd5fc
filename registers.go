// registers.go - Memory map, MMIO register addresses and flag bit layout for Nimbus16

/*
nimbus16 - a 16-bit retro-style virtual computer

This module centralises the address-space and encoding constants shared by
the processor, the memory map and the serial device: RAM/ROM boundaries,
the three memory-mapped registers (serial TX/RX and the exit latch), the
interrupt vector locations at the top of ROM, and the five-bit flag word
layout used by the flags-transfer instructions.

These constants are bit-exact: the processor, memory map and serial device
all dereference them directly rather than recomputing offsets, so a change
here changes the machine's visible behaviour.
*/

package main

const (
	// RAMSize is the size in bytes of main RAM, addresses 0x0000..0x8000.
	RAMSize = 0x8000

	// SerialTX, written: transmit the low byte to the host terminal.
	SerialTX = 0xE000
	// SerialRX, read: next received byte (zero-extended), or 0xFFFF if empty.
	SerialRX = 0xE002
	// ExitReg, any write: request program termination.
	ExitReg = 0xE100

	// ROMBase is the first address of the 4KiB ROM window.
	ROMBase = 0xF000
	// ROMSize is the exact size in bytes a ROM image must be.
	ROMSize = 0x1000

	// Interrupt/reset vectors, little-endian words at the top of ROM.
	IRQVec   = 0xFFFA
	NMIVec   = 0xFFFC
	ResetVec = 0xFFFE
)

// Flag word bit positions, shared by GetFlags/SetFlags and the flags-transfer
// opcodes (arithmetic op 0xE/0xF, misc read/write-flags).
const (
	FlagZero = 1 << iota
	FlagNegative
	FlagCarry
	FlagInterruptsEnabled
	FlagFault
)

// Serial device tuning: FIFO depth and the IRQ batching thresholds.
const (
	SerialFIFOCapacity  = 16
	SerialIRQBatchSize  = 4
	SerialIRQMaxLatency = 16
)
