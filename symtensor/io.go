package symtensor

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/qsymm/symten"
	"github.com/qsymm/symten/block"
	"github.com/qsymm/symten/bond"
	"github.com/qsymm/symten/qnum"
)

const saveMagic uint32 = 0x55543130 // "UT10"

// QnumCodec lets SymTensor's save/load format serialize an arbitrary Qnum
// implementation without the core depending on a concrete one: Qnum is
// kept as a minimal external collaborator (spec §2), so encoding it is the
// caller's responsibility. qnum.U1 round-trips through MarshalBinary and
// qnum.UnmarshalU1.
type QnumCodec interface {
	Encode(q qnum.Qnum) ([]byte, error)
	Decode(b []byte) (qnum.Qnum, error)
}

// U1Codec is the QnumCodec for the reference qnum.U1 implementation.
type U1Codec struct{}

func (U1Codec) Encode(q qnum.Qnum) ([]byte, error) {
	u, ok := q.(qnum.U1)
	if !ok {
		return nil, fmt.Errorf("symtensor: U1Codec given non-U1 charge %T", q)
	}
	return u.MarshalBinary()
}

func (U1Codec) Decode(b []byte) (qnum.Qnum, error) {
	u, err := qnum.UnmarshalU1(b)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Save writes t in the binary format of spec §6.
func (t *SymTensor) Save(w io.Writer, codec QnumCodec) error {
	if err := binary.Write(w, binary.LittleEndian, saveMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(t.Status)); err != nil {
		return err
	}
	kind := uint8(0)
	if t.Kind == block.Complex {
		kind = 1
	}
	if err := binary.Write(w, binary.LittleEndian, kind); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(t.Bonds))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(t.RNum)); err != nil {
		return err
	}
	for _, b := range t.Bonds {
		dir := uint8(b.Dir)
		if err := binary.Write(w, binary.LittleEndian, dir); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(b.States))); err != nil {
			return err
		}
		for _, s := range b.States {
			if err := writeQnum(w, codec, s.Charge); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(s.Mult)); err != nil {
				return err
			}
		}
	}

	hasLabels := uint8(1)
	if err := binary.Write(w, binary.LittleEndian, hasLabels); err != nil {
		return err
	}
	for _, l := range t.Labels {
		if err := binary.Write(w, binary.LittleEndian, int32(l)); err != nil {
			return err
		}
	}

	nameBytes := []byte(t.Name)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(nameBytes))); err != nil {
		return err
	}
	if _, err := w.Write(nameBytes); err != nil {
		return err
	}

	if t.Status&HaveElem == 0 {
		return nil
	}
	for _, q := range t.Charges() {
		blk := t.Blocks[q]
		if err := writeQnum(w, codec, q); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(blk.Rows)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(blk.Cols)); err != nil {
			return err
		}
		dense := blk.Dense()
		for i := 0; i < dense.Rows; i++ {
			for j := 0; j < dense.Cols; j++ {
				if t.Kind == block.Complex {
					c := dense.AtC(i, j)
					if err := binary.Write(w, binary.LittleEndian, real(c)); err != nil {
						return err
					}
					if err := binary.Write(w, binary.LittleEndian, imag(c)); err != nil {
						return err
					}
				} else {
					if err := binary.Write(w, binary.LittleEndian, dense.At(i, j)); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func writeQnum(w io.Writer, codec QnumCodec, q qnum.Qnum) error {
	b, err := codec.Encode(q)
	if err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(b))); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func readQnum(r io.Reader, codec QnumCodec) (qnum.Qnum, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return codec.Decode(buf)
}

// Load reads a SymTensor back from the binary format of spec §6.
func Load(r io.Reader, codec QnumCodec) (*SymTensor, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != saveMagic {
		return nil, symten.New(symten.InvalidNetwork, "load: bad magic number")
	}
	var status, kindByte uint8
	if err := binary.Read(r, binary.LittleEndian, &status); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &kindByte); err != nil {
		return nil, err
	}
	kind := block.Real
	if kindByte == 1 {
		kind = block.Complex
	}

	var bondNum, rNum uint32
	if err := binary.Read(r, binary.LittleEndian, &bondNum); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &rNum); err != nil {
		return nil, err
	}

	bonds := make([]bond.Bond, bondNum)
	for i := range bonds {
		var dirByte uint8
		if err := binary.Read(r, binary.LittleEndian, &dirByte); err != nil {
			return nil, err
		}
		var stateCount uint32
		if err := binary.Read(r, binary.LittleEndian, &stateCount); err != nil {
			return nil, err
		}
		states := make([]bond.State, stateCount)
		for j := range states {
			q, err := readQnum(r, codec)
			if err != nil {
				return nil, err
			}
			var mult uint32
			if err := binary.Read(r, binary.LittleEndian, &mult); err != nil {
				return nil, err
			}
			states[j] = bond.State{Charge: q, Mult: int(mult)}
		}
		bonds[i] = bond.New(bond.Direction(dirByte), states)
	}

	var hasLabels uint8
	if err := binary.Read(r, binary.LittleEndian, &hasLabels); err != nil {
		return nil, err
	}
	labels := make([]int, bondNum)
	if hasLabels != 0 {
		for i := range labels {
			var l int32
			if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
				return nil, err
			}
			labels[i] = int(l)
		}
	}

	var nameLen uint32
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, err
	}
	nameBuf := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBuf); err != nil {
		return nil, err
	}

	loadStatus := Status(status)

	var firstQ qnum.Qnum
	var havePeeked bool
	var t *SymTensor
	if bondNum == 0 {
		// A rank-0 (fully contracted or fully traced) tensor has no bond
		// to derive the charge type's identity from. If it carries a
		// stored element, that element's charge doubles as the identity
		// sample; peek it before constructing.
		if loadStatus&HaveElem == 0 {
			return nil, symten.New(symten.InvalidNetwork, "load: rank-0 tensor with no stored element has no charge-type sample")
		}
		q, err := readQnum(r, codec)
		if err != nil {
			return nil, err
		}
		firstQ, havePeeked = q, true
		t = newFromZero(bonds, int(rNum), kind, q)
	} else {
		t = New(bonds, int(rNum), kind)
	}
	t.Labels = labels
	t.Name = string(nameBuf)
	t.Status = loadStatus

	if t.Status&HaveElem == 0 {
		return t, nil
	}

	blockCount := len(t.Blocks)
	for i := 0; i < blockCount; i++ {
		var q qnum.Qnum
		var err error
		if havePeeked && i == 0 {
			q = firstQ
		} else {
			q, err = readQnum(r, codec)
			if err != nil {
				return nil, err
			}
		}
		var rows, cols uint32
		if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &cols); err != nil {
			return nil, err
		}
		var blk *block.Block
		if kind == block.Complex {
			blk = block.NewComplex(int(rows), int(cols))
		} else {
			blk = block.NewReal(int(rows), int(cols))
		}
		for i := 0; i < int(rows); i++ {
			for j := 0; j < int(cols); j++ {
				if kind == block.Complex {
					var re, im float64
					if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
						return nil, err
					}
					if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
						return nil, err
					}
					blk.SetC(i, j, complex(re, im))
				} else {
					var v float64
					if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
						return nil, err
					}
					blk.Set(i, j, v)
				}
			}
		}
		t.Blocks[q] = blk
	}
	return t, nil
}
