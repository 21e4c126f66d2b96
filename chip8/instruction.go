package chip8

import "fmt"

// Op identifies a decoded instruction.
type Op uint8

const (
	OpUnsupported Op = iota
	OpCls            // 00E0
	OpRet            // 00EE
	OpJp             // 1nnn
	OpCall           // 2nnn
	OpSeImm          // 3xkk
	OpSneImm         // 4xkk
	OpSeReg          // 5xy0
	OpLdImm          // 6xkk
	OpAddImm         // 7xkk
	OpLdReg          // 8xy0
	OpOr             // 8xy1
	OpAnd            // 8xy2
	OpXor            // 8xy3
	OpAddReg         // 8xy4
	OpSub            // 8xy5
	OpShr            // 8xy6
	OpSubn           // 8xy7
	OpShl            // 8xyE
	OpSneReg         // 9xy0
	OpLdI            // Annn
	OpJpV0           // Bnnn
	OpRnd            // Cxkk
	OpDrw            // Dxyn
	OpSkp            // Ex9E
	OpSknp           // ExA1
	OpLdVxDT         // Fx07
	OpLdVxK          // Fx0A
	OpLdDTVx         // Fx15
	OpLdSTVx         // Fx18
	OpAddI           // Fx1E
	OpLdF            // Fx29
	OpLdB            // Fx33
	OpLdIVx          // Fx55
	OpLdVxI          // Fx65
)

// Instruction is an opcode split into its operation and operand fields.
type Instruction struct {
	Opcode uint16
	Op     Op
	X      uint8  // n2
	Y      uint8  // n3
	N      uint8  // n4
	KK     uint8  // low byte
	NNN    uint16 // low 12 bits
}

// Decode maps a 16-bit opcode to its instruction. Unknown opcodes decode to
// OpUnsupported.
func Decode(op uint16) Instruction {
	nnn := op & 0x0FFF
	ins := Instruction{
		Opcode: op,
		X:      uint8(nnn>>8) & 0xf,
		Y:      uint8(nnn>>4) & 0xf,
		N:      uint8(nnn) & 0xf,
		KK:     uint8(nnn),
		NNN:    nnn,
	}
	ins.Op = decodeOp(op, ins)
	return ins
}

func decodeOp(op uint16, ins Instruction) Op {
	switch op & 0xF000 {
	case 0x0000:
		switch op {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
	case 0x1000:
		return OpJp
	case 0x2000:
		return OpCall
	case 0x3000:
		return OpSeImm
	case 0x4000:
		return OpSneImm
	case 0x5000:
		if ins.N == 0 {
			return OpSeReg
		}
	case 0x6000:
		return OpLdImm
	case 0x7000:
		return OpAddImm
	case 0x8000:
		switch ins.N {
		case 0x0:
			return OpLdReg
		case 0x1:
			return OpOr
		case 0x2:
			return OpAnd
		case 0x3:
			return OpXor
		case 0x4:
			return OpAddReg
		case 0x5:
			return OpSub
		case 0x6:
			return OpShr
		case 0x7:
			return OpSubn
		case 0xE:
			return OpShl
		}
	case 0x9000:
		if ins.N == 0 {
			return OpSneReg
		}
	case 0xA000:
		return OpLdI
	case 0xB000:
		return OpJpV0
	case 0xC000:
		return OpRnd
	case 0xD000:
		return OpDrw
	case 0xE000:
		switch ins.KK {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF000:
		switch ins.KK {
		case 0x07:
			return OpLdVxDT
		case 0x0A:
			return OpLdVxK
		case 0x15:
			return OpLdDTVx
		case 0x18:
			return OpLdSTVx
		case 0x1E:
			return OpAddI
		case 0x29:
			return OpLdF
		case 0x33:
			return OpLdB
		case 0x55:
			return OpLdIVx
		case 0x65:
			return OpLdVxI
		}
	}
	return OpUnsupported
}

// String returns the assembler mnemonic of the instruction.
func (ins Instruction) String() string {
	x, y := ins.X, ins.Y
	switch ins.Op {
	case OpCls:
		return "CLS"
	case OpRet:
		return "RET"
	case OpJp:
		return fmt.Sprintf("JP   #%03X", ins.NNN)
	case OpCall:
		return fmt.Sprintf("CALL #%03X", ins.NNN)
	case OpSeImm:
		return fmt.Sprintf("SE   V%X,#%02X", x, ins.KK)
	case OpSneImm:
		return fmt.Sprintf("SNE  V%X,#%02X", x, ins.KK)
	case OpSeReg:
		return fmt.Sprintf("SE   V%X,V%X", x, y)
	case OpLdImm:
		return fmt.Sprintf("LD   V%X,#%02X", x, ins.KK)
	case OpAddImm:
		return fmt.Sprintf("ADD  V%X,#%02X", x, ins.KK)
	case OpLdReg:
		return fmt.Sprintf("LD   V%X,V%X", x, y)
	case OpOr:
		return fmt.Sprintf("OR   V%X,V%X", x, y)
	case OpAnd:
		return fmt.Sprintf("AND  V%X,V%X", x, y)
	case OpXor:
		return fmt.Sprintf("XOR  V%X,V%X", x, y)
	case OpAddReg:
		return fmt.Sprintf("ADD  V%X,V%X", x, y)
	case OpSub:
		return fmt.Sprintf("SUB  V%X,V%X", x, y)
	case OpShr:
		return fmt.Sprintf("SHR  V%X", x)
	case OpSubn:
		return fmt.Sprintf("SUBN V%X,V%X", x, y)
	case OpShl:
		return fmt.Sprintf("SHL  V%X", x)
	case OpSneReg:
		return fmt.Sprintf("SNE  V%X,V%X", x, y)
	case OpLdI:
		return fmt.Sprintf("LD   I,#%03X", ins.NNN)
	case OpJpV0:
		return fmt.Sprintf("JP   V0,#%03X", ins.NNN)
	case OpRnd:
		return fmt.Sprintf("RND  V%X,#%02X", x, ins.KK)
	case OpDrw:
		return fmt.Sprintf("DRW  V%X,V%X,%d", x, y, ins.N)
	case OpSkp:
		return fmt.Sprintf("SKP  V%X", x)
	case OpSknp:
		return fmt.Sprintf("SKNP V%X", x)
	case OpLdVxDT:
		return fmt.Sprintf("LD   V%X,DT", x)
	case OpLdVxK:
		return fmt.Sprintf("LD   V%X,K", x)
	case OpLdDTVx:
		return fmt.Sprintf("LD   DT,V%X", x)
	case OpLdSTVx:
		return fmt.Sprintf("LD   ST,V%X", x)
	case OpAddI:
		return fmt.Sprintf("ADD  I,V%X", x)
	case OpLdF:
		return fmt.Sprintf("LD   F,V%X", x)
	case OpLdB:
		return fmt.Sprintf("LD   B,V%X", x)
	case OpLdIVx:
		return fmt.Sprintf("LD   [I],V%X", x)
	case OpLdVxI:
		return fmt.Sprintf("LD   V%X,[I]", x)
	}
	return fmt.Sprintf("DW   #%04X", ins.Opcode)
}
