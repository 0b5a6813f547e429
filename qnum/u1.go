package qnum

import (
	"encoding/binary"
	"fmt"
)

// U1 is the reference Qnum implementation: a single signed-integer charge
// (a U(1) symmetry label, e.g. particle number) plus a parity bit marking
// fermionic states. It is comparable and so usable directly as a map key.
type U1 struct {
	Charge int64
	Parity bool
}

// NewU1 returns a bosonic U1 charge.
func NewU1(charge int64) U1 { return U1{Charge: charge} }

// NewU1Fermionic returns a fermionic U1 charge.
func NewU1Fermionic(charge int64) U1 { return U1{Charge: charge, Parity: true} }

// Equal implements Qnum.
func (q U1) Equal(other Qnum) bool {
	o, ok := other.(U1)
	return ok && o == q
}

// Less implements Qnum. Charge dominates; among equal charges, a bosonic
// state sorts before a fermionic one so ordering is total and stable.
func (q U1) Less(other Qnum) bool {
	o, ok := other.(U1)
	if !ok {
		panic(fmt.Sprintf("qnum: U1.Less given incompatible type %T", other))
	}
	if q.Charge != o.Charge {
		return q.Charge < o.Charge
	}
	return !q.Parity && o.Parity
}

// Add implements Qnum. Parity composes by XOR, matching fermion-number
// parity conservation under combination.
func (q U1) Add(other Qnum) Qnum {
	o, ok := other.(U1)
	if !ok {
		panic(fmt.Sprintf("qnum: U1.Add given incompatible type %T", other))
	}
	return U1{Charge: q.Charge + o.Charge, Parity: q.Parity != o.Parity}
}

// Negate implements Qnum.
func (q U1) Negate() Qnum {
	return U1{Charge: -q.Charge, Parity: q.Parity}
}

// Fermionic implements Qnum.
func (q U1) Fermionic() bool { return q.Parity }

// MarshalBinary implements encoding.BinaryMarshaler, used by SymTensor's
// save format to serialize a block charge.
func (q U1) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint64(buf, uint64(q.Charge))
	if q.Parity {
		buf[8] = 1
	}
	return buf, nil
}

// UnmarshalU1 decodes bytes produced by MarshalBinary. It is a free
// function rather than a pointer-receiver UnmarshalBinary because U1 is
// used by value throughout (map keys, interface values).
func UnmarshalU1(b []byte) (U1, error) {
	if len(b) != 9 {
		return U1{}, fmt.Errorf("qnum: malformed U1 encoding, want 9 bytes got %d", len(b))
	}
	return U1{Charge: int64(binary.LittleEndian.Uint64(b)), Parity: b[8] != 0}, nil
}

// String implements fmt.Stringer for diagnostic output.
func (q U1) String() string {
	if q.Parity {
		return fmt.Sprintf("U1(%d;f)", q.Charge)
	}
	return fmt.Sprintf("U1(%d)", q.Charge)
}
