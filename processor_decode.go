// processor_decode.go - Instruction decode and execution for the Nimbus16 CPU

/*
This module implements execute(), the single entry point Clock calls after
fetch. It splits on bit3 of the instruction's low nibble: clear selects the
short-op family (immediate loads, load/store, relative jump), set selects
one of the three long-op families keyed by the low nibble itself (0x8
jump/movement, 0x9 arithmetic/logic/shift, 0xA misc).

Bit-field layout, resolved where the distilled instruction set left more
than one reading open (see DESIGN.md for the worked derivation):

Short ops (low nibble 0..7, rd = bits[7:4]):
  nibble 0  SEXT   rd <- sign_extend8(imm)            imm = bits[15:8]
  nibble 1  LDH    rd.hi <- imm                        imm = bits[15:8]
  nibble 2  ADI    rd <- rd + imm (unsigned), carry out
  nibble 3  SBI    rd <- rd - imm, carry <- !borrow
  nibble 4  LOAD   ea = R[ra]+R[ro]; delay rd <- mem[ea]
  nibble 5  STORE  mem[R[ra]] <- R[rd]   (base only, no offset)
  nibble 6  RJMP   pc <- pc + offset, via delay slot
  nibble 7  RJMPL  lr <- pc+2; pc <- pc + offset, via delay slot

Long ops (low nibble 8/9/A, r1 = bits[15:12], r2 = bits[11:8]):
  0x8 bit7=0  JMP   conditional (bits[6:4]); link r2 <- pc+2; pc <- R[r1] (delay)
  0x8 bit7=1  MOVE  sub-op bits[5:4]: 0 PUSH 1 POP 2 MOV 3 MSX
                    r1 is the pointer/source register, r2 the value register
                    (written by POP/MOV/MSX, read by PUSH).
  0x9         ALU   op bits[7:4], full table in processor_alu.go
  0xA         MISC  sub-op bits[6:4]: 0 PSR 1 IRET 2 RFLG 3 WFLG 4 INT
*/

package main

func (p *Processor) execute(mem MemoryPort, instr uint16) {
	lowNibble := instr & 0xF
	if lowNibble&0x8 == 0 {
		p.executeShort(mem, instr, lowNibble)
		return
	}
	switch lowNibble {
	case 0x8:
		p.executeJumpMove(mem, instr)
	case 0x9:
		p.executeALU(instr)
	case 0xA:
		p.executeMisc(mem, instr)
	default:
		// No opcode is assigned to low nibbles 0xB..0xF: no-op.
	}
}

func (p *Processor) executeShort(mem MemoryPort, instr uint16, lowNibble uint16) {
	rd := uint8((instr >> 4) & 0xF)
	imm := uint8(instr >> 8)

	switch lowNibble {
	case 0x0: // SEXT
		p.WriteReg(rd, uint16(int16(int8(imm))))

	case 0x1: // LDH
		lo := p.ReadReg(rd) & 0x00FF
		p.WriteReg(rd, uint16(imm)<<8|lo)

	case 0x2: // ADI
		rdv := p.ReadReg(rd)
		sum := uint32(rdv) + uint32(imm)
		p.carry = sum > 0xFFFF
		p.WriteReg(rd, uint16(sum))

	case 0x3: // SBI
		rdv := p.ReadReg(rd)
		p.carry = rdv >= uint16(imm)
		p.WriteReg(rd, rdv-uint16(imm))

	case 0x4: // LOAD
		ra := uint8(instr >> 12)
		ro := uint8((instr >> 8) & 0xF)
		ea := p.ReadReg(ra) + p.ReadReg(ro)
		p.setDelay(rd, mem.ReadWord(ea))

	case 0x5: // STORE
		ra := uint8(instr >> 12)
		mem.WriteWord(p.ReadReg(ra), p.ReadReg(rd))

	case 0x6: // RJMP
		offset := relJumpOffset(instr)
		p.setDelay(15, p.pc+offset)

	case 0x7: // RJMPL
		offset := relJumpOffset(instr)
		p.WriteReg(14, p.pc+2)
		p.setDelay(15, p.pc+offset)
	}
}

// relJumpOffset decodes the excess-K (K=4096) 13-bit signed offset packed
// into bits[15:4] of a relative-jump instruction.
func relJumpOffset(instr uint16) uint16 {
	offsetEK := (instr & 0xFFF0) >> 3
	return offsetEK - 4096
}

func (p *Processor) executeJumpMove(mem MemoryPort, instr uint16) {
	r1 := uint8(instr >> 12)
	r2 := uint8((instr >> 8) & 0xF)

	if instr&0x80 == 0 {
		p.executeJump(r1, r2, instr)
		return
	}
	// Movement's pointer/source register is r1 (bits[15:12]); the value it
	// moves or stacks is r2 (bits[11:8]).
	p.executeMove(mem, r2, r1, instr)
}

func (p *Processor) executeJump(r1, r2 uint8, instr uint16) {
	cond := (instr >> 4) & 0x7
	var taken bool
	switch cond {
	case 0:
		taken = true
	case 1:
		taken = p.zero
	case 2:
		taken = !p.zero
	case 3:
		taken = p.negative
	default:
		taken = false
	}
	if !taken {
		return
	}
	p.WriteReg(r2, p.pc+2)
	p.setDelay(15, p.ReadReg(r1))
}

func (p *Processor) executeMove(mem MemoryPort, rd, rs uint8, instr uint16) {
	subop := (instr >> 4) & 0x3
	switch subop {
	case 0: // PUSH
		mem.WriteWord(p.ReadReg(rs), p.ReadReg(rd))
		p.WriteRegNoFlags(rs, p.ReadReg(rs)+2)

	case 1: // POP
		ptr := p.ReadReg(rs) - 2
		p.setDelay(rd, mem.ReadWord(ptr))
		p.WriteRegNoFlags(rs, ptr)

	case 2: // MOV
		p.WriteReg(rd, p.ReadReg(rs))

	case 3: // MSX
		p.WriteReg(rd, uint16(int16(int8(p.ReadReg(rs)))))
	}
}

func (p *Processor) executeMisc(mem MemoryPort, instr uint16) {
	r1 := uint8(instr >> 12)
	r2 := uint8((instr >> 8) & 0xF)
	subop := (instr >> 4) & 0x7

	switch subop {
	case 0: // PSR - push iret onto the stack pointed to by r1
		mem.WriteWord(p.ReadReg(r1), p.iret)
		p.WriteRegNoFlags(r1, p.ReadReg(r1)+2)

	case 1: // IRET - pop PC from the stack pointed to by r1
		ptr := p.ReadReg(r1) - 2
		p.setDelay(15, mem.ReadWord(ptr))
		p.WriteRegNoFlags(r1, ptr)
		p.interruptsEnabled = true
		p.shouldWriteFlags = swfNo

	case 2: // read flags into r2
		p.WriteReg(r2, p.GetFlags())

	case 3: // write r1 into flags
		p.SetFlags(p.ReadReg(r1))

	case 4: // INT - software NMI
		p.enterNMI(mem)
	}
}
