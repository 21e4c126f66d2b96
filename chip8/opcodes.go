package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// execute applies a decoded instruction to the machine state. PC advances by
// two afterwards unless the instruction sets it itself or parks on Fx0A.
func (c *Chip8) execute(ins Instruction) error {
	x, y := ins.X, ins.Y
	nn := ins.KK
	advance := true

	switch ins.Op {
	case OpCls: // clear display
		c.disp.clear()

	case OpRet: // return from subroutine
		r, err := c.stack.Pop()
		if err != nil {
			return err
		}
		c.pc = r
		advance = false

	case OpJp: // goto NNN
		c.pc = ins.NNN
		advance = false

	case OpCall: // call NNN
		if err := c.stack.Push(c.pc + instructionBytes); err != nil {
			return err
		}
		c.pc = ins.NNN
		advance = false

	case OpSeImm: // if(Vx==NN)
		c.skipIf(c.v[x] == nn)

	case OpSneImm: // if(Vx!=NN)
		c.skipIf(c.v[x] != nn)

	case OpSeReg: // if(Vx==Vy)
		c.skipIf(c.v[x] == c.v[y])

	case OpLdImm: // Vx = NN
		c.v[x] = nn

	case OpAddImm: // Vx += NN, carry flag is not changed
		c.v[x] += nn

	case OpLdReg: // Vx = Vy
		c.v[x] = c.v[y]

	case OpOr: // Vx |= Vy
		c.v[x] |= c.v[y]

	case OpAnd: // Vx &= Vy
		c.v[x] &= c.v[y]

	case OpXor: // Vx ^= Vy
		c.v[x] ^= c.v[y]

	case OpAddReg: // Vx += Vy
		carried := uint16(c.v[x])+uint16(c.v[y]) > 0xff
		c.v[x] += c.v[y]
		c.updateCarryFlag(carried)

	case OpSub: // Vx -= Vy
		notBorrowed := c.v[x] >= c.v[y]
		c.v[x] -= c.v[y]
		c.updateCarryFlag(notBorrowed)

	case OpShr: // Vx >>= 1
		lsb := c.v[x]&0x01 == 1
		c.v[x] >>= 1
		c.updateCarryFlag(lsb)

	case OpSubn: // Vx = Vy - Vx
		notBorrowed := c.v[y] >= c.v[x]
		c.v[x] = c.v[y] - c.v[x]
		c.updateCarryFlag(notBorrowed)

	case OpShl: // Vx <<= 1
		msb := c.v[x]>>7 == 1
		c.v[x] <<= 1
		c.updateCarryFlag(msb)

	case OpSneReg: // if(Vx!=Vy)
		c.skipIf(c.v[x] != c.v[y])

	case OpLdI: // I = NNN
		c.i = ins.NNN

	case OpJpV0: // PC = V0 + NNN
		c.pc = uint16(c.v[0]) + ins.NNN
		advance = false

	case OpRnd: // Vx = rand() & NN
		c.v[x] = c.random.Byte() & nn

	case OpDrw: // draw(Vx, Vy, N)
		if err := checkRange(c.i, int(ins.N)); err != nil {
			return err
		}
		flipped := c.disp.draw(c.v[x], c.v[y], c.mem[c.i:int(c.i)+int(ins.N)])
		c.updateCarryFlag(flipped)

	case OpSkp: // if(key[Vx] down)
		if c.v[x] >= KeyCount {
			return fmt.Errorf("%w: %d", ErrKeyOutOfRange, c.v[x])
		}
		c.skipIf(c.keys.IsDown(c.v[x]))

	case OpSknp: // if(key[Vx] up)
		if c.v[x] >= KeyCount {
			return fmt.Errorf("%w: %d", ErrKeyOutOfRange, c.v[x])
		}
		c.skipIf(!c.keys.IsDown(c.v[x]))

	case OpLdVxDT: // Vx = delay
		c.v[x] = c.timer.delay

	case OpLdVxK: // Vx = get_key(), parks until a key is pressed
		c.keys.reset()
		c.state = awaitingKey
		c.waitReg = x
		advance = false

	case OpLdDTVx: // delay = Vx
		c.timer.delay = c.v[x]

	case OpLdSTVx: // sound = Vx
		c.timer.sound = c.v[x]

	case OpAddI: // I += Vx
		sum := c.i + uint16(c.v[x])
		if c.quirkVF {
			c.updateCarryFlag(sum > 0x0FFF)
		}
		c.i = sum & 0x0FFF

	case OpLdF: // I = sprite_addr[Vx]
		c.i = FontOffset + uint16(c.v[x])*FontSpriteBytes

	case OpLdB: // set_BCD(Vx)
		if err := checkRange(c.i, 3); err != nil {
			return err
		}
		c.mem[c.i+0] = c.v[x] / 100
		c.mem[c.i+1] = (c.v[x] % 100) / 10
		c.mem[c.i+2] = c.v[x] % 10

	case OpLdIVx: // reg_dump(Vx, &I)
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.mem[c.i:], c.v[:x+1])

	case OpLdVxI: // reg_load(Vx, &I)
		if err := checkRange(c.i, int(x)+1); err != nil {
			return err
		}
		copy(c.v[:x+1], c.mem[c.i:])

	default:
		if c.logger != nil {
			c.logger.Debug(ErrUnsupportedOpcode.Error(),
				log.String("pc", fmt.Sprintf("%03X", c.pc)),
				log.String("opcode", fmt.Sprintf("%04X", ins.Opcode)))
		}
	}

	if advance {
		c.pc += instructionBytes
	}
	return nil
}

func (c *Chip8) skipIf(b bool) {
	if b {
		c.pc += instructionBytes
	}
}
