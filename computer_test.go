package main

import (
	"testing"
	"time"
)

// putInstrBE writes instr into mem's RAM at addr the way instruction fetch
// expects to read it: high byte first.
func putInstrBE(mem *MemoryMap, addr uint16, instr uint16) {
	mem.WriteByte(addr, byte(instr>>8))
	mem.WriteByte(addr+1, byte(instr))
}

func newTestMemoryMap() (*MemoryMap, *Serial) {
	rom := make([]byte, ROMSize)
	rom[ROMSize-2], rom[ROMSize-1] = 0x00, 0x00 // RESET_VEC = 0x0000
	rom[ROMSize-6], rom[ROMSize-5] = 0x00, 0x01 // IRQ_VEC = 0x0100, little-endian
	serial := NewSerial()
	mem := NewMemoryMap(rom, serial)
	return mem, serial
}

func TestComputer_StepReportsExitAfterExitWrite(t *testing.T) {
	mem, _ := newTestMemoryMap()
	// straight-line no-ops: SEXT r0,0 at addresses 0 and 2; the zeroed RAM
	// after them decodes as the same no-op.
	putInstrBE(mem, 0x0000, sextOp(0, 0))
	putInstrBE(mem, 0x0002, sextOp(0, 0))
	cpu := NewProcessor()
	c := NewComputer(cpu, mem)

	for i := 0; i < 3; i++ {
		if c.Step() {
			t.Fatalf("exited after %d steps, want to keep running until explicit exit", i)
		}
	}
	mem.WriteWord(ExitReg, 1)
	if !c.Step() {
		t.Fatal("Step did not report exit after the guest wrote to ExitReg")
	}
}

func TestComputer_RunDrivesStepsFromTickChannelUntilExit(t *testing.T) {
	mem, _ := newTestMemoryMap()
	putInstrBE(mem, 0x0000, sextOp(0, 0))
	putInstrBE(mem, 0x0002, sextOp(0, 0))
	cpu := NewProcessor()
	c := NewComputer(cpu, mem)

	tick := make(chan time.Time)
	afterTicks := 0
	runDone := make(chan struct{})
	go func() {
		c.Run(tick, func() { afterTicks++ })
		close(runDone)
	}()

	for i := 0; i < 3; i++ {
		tick <- time.Time{}
	}
	mem.WriteWord(ExitReg, 1)
	tick <- time.Time{}

	select {
	case <-runDone:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the guest requested exit")
	}
	if afterTicks != 4 {
		t.Errorf("afterTick called %d times, want 4", afterTicks)
	}
}

func TestComputer_SerialIRQInterruptsRunningProgram(t *testing.T) {
	mem, serial := newTestMemoryMap()
	// fill RAM from 0 with no-ops, including the IRQ handler at 0x0100.
	for addr := uint16(0x0000); addr < 0x0110; addr += 2 {
		putInstrBE(mem, addr, sextOp(0, 0))
	}
	cpu := NewProcessor()
	c := NewComputer(cpu, mem)
	cpu.interruptsEnabled = true
	cpu.shouldWriteFlags = swfYes

	for i := 0; i < SerialIRQBatchSize; i++ {
		serial.Push(byte('a' + i))
	}

	for i := 0; i < SerialIRQBatchSize; i++ {
		c.Step()
	}
	if cpu.pc < 0x0100 {
		t.Errorf("pc = %#x, expected the IRQ handler to have been entered by now", cpu.pc)
	}
	if cpu.interruptsEnabled {
		t.Error("interrupts_enabled still true after IRQ entry")
	}
}
