// Package limb implements fixed-length multi-precision integers as raw
// little-endian word vectors. Every operation runs in constant time with
// respect to the limb values: no data-dependent branches, no data-dependent
// memory indexing. Vector lengths are public.
package limb

import "math/bits"

// Word is one machine-word-sized digit of a multi-precision integer.
// Arithmetic is in base 2^WordBits with WordBits either 32 or 64.
type Word uint

const (
	// WordBits is the size of a Word in bits.
	WordBits = bits.UintSize
	// WordBytes is the size of a Word in bytes.
	WordBytes = WordBits / 8
	// MaxWords bounds the limb count of any single-width value handled by
	// this module (double-width intermediates use 2*MaxWords). It sizes the
	// stack scratch buffers of the upper layers.
	MaxWords = 512 / WordBits
)

// Carry and Borrow are 0/1 words produced by addition and subtraction chains.
type (
	Carry  = Word
	Borrow = Word
)

// Choice is a secret boolean: a 0/1 word used to steer conditional
// operations without branching. Deriving and consuming a Choice performs
// the same instruction sequence and memory accesses for both values.
type Choice Word

// Mask expands c to an all-zero or all-one word.
func (c Choice) Mask() Word {
	return -Word(c)
}

// Not returns the complement of c.
func (c Choice) Not() Choice {
	return c ^ 1
}

// And returns c AND d.
func (c Choice) And(d Choice) Choice {
	return c & d
}

// Or returns c OR d.
func (c Choice) Or(d Choice) Choice {
	return c | d
}

// Xor returns c XOR d.
func (c Choice) Xor(d Choice) Choice {
	return c ^ d
}

// IsTrue leaves constant-time land. Callers use it at the API boundary
// (tests, public verdicts), never inside an arithmetic kernel.
func (c Choice) IsTrue() bool {
	return c == 1
}

// IsZeroWord returns 1 if w == 0.
func IsZeroWord(w Word) Choice {
	// The high bit of w|-w is set for any non-zero w.
	return Choice(1 ^ (w|-w)>>(WordBits-1))
}

// EqWord returns 1 if x == y.
func EqWord(x, y Word) Choice {
	return IsZeroWord(x ^ y)
}

// LtWord returns 1 if x < y, by observing the borrow of x - y.
func LtWord(x, y Word) Choice {
	_, b := SubWW(x, y, 0)
	return Choice(b)
}

// MulWW returns the double-width product x*y.
func MulWW(x, y Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	return Word(h), Word(l)
}

// AddWW returns x+y+c and its carry; c must be 0 or 1.
func AddWW(x, y, c Word) (sum, carry Word) {
	s, cc := bits.Add(uint(x), uint(y), uint(c))
	return Word(s), Word(cc)
}

// SubWW returns x-y-b and its borrow; b must be 0 or 1.
func SubWW(x, y, b Word) (diff, borrow Word) {
	d, bb := bits.Sub(uint(x), uint(y), uint(b))
	return Word(d), Word(bb)
}

// Div2By1 returns the quotient and remainder of (hi:lo) / d.
// Requires hi < d. Division latency is the one concession to hardware
// the reduction path makes; it never sees Montgomery-domain secrets.
func Div2By1(hi, lo, d Word) (quo, rem Word) {
	q, r := bits.Div(uint(hi), uint(lo), uint(d))
	return Word(q), Word(r)
}

// Limbs is an ordered little-endian word vector: the least significant
// limb is at index 0. The length is fixed by the caller and public.
type Limbs []Word

// SetZero sets a to 0.
func (a Limbs) SetZero() {
	for i := range a {
		a[i] = 0
	}
}

// SetOne sets a to 1.
func (a Limbs) SetOne() {
	a.SetZero()
	a[0] = 1
}

// SetUint sets a to the word n.
func (a Limbs) SetUint(n Word) {
	a.SetZero()
	a[0] = n
}

// Set copies b into a. The vectors must have the same length.
func (a Limbs) Set(b Limbs) {
	copy(a, b)
}

// CCopy copies b into a if ctl is 1 and leaves a unchanged otherwise.
// Both paths touch every limb of a and b.
func (a Limbs) CCopy(b Limbs, ctl Choice) {
	mask := ctl.Mask()
	for i := range a {
		a[i] ^= (a[i] ^ b[i]) & mask
	}
}

// CSwap exchanges a and b if ctl is 1, with identical memory traffic
// either way.
func (a Limbs) CSwap(b Limbs, ctl Choice) {
	mask := ctl.Mask()
	for i := range a {
		t := (a[i] ^ b[i]) & mask
		a[i] ^= t
		b[i] ^= t
	}
}

// CClear zeroes a if ctl is 1.
func (a Limbs) CClear(ctl Choice) {
	keep := ctl.Not().Mask()
	for i := range a {
		a[i] &= keep
	}
}

// Equal returns 1 if a == b.
func (a Limbs) Equal(b Limbs) Choice {
	var acc Word
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return IsZeroWord(acc)
}

// IsZero returns 1 if a == 0.
func (a Limbs) IsZero() Choice {
	var acc Word
	for i := range a {
		acc |= a[i]
	}
	return IsZeroWord(acc)
}

// IsOne returns 1 if a == 1.
func (a Limbs) IsOne() Choice {
	acc := a[0] ^ 1
	for i := 1; i < len(a); i++ {
		acc |= a[i]
	}
	return IsZeroWord(acc)
}

// IsOdd returns 1 if the low bit of a is set.
func (a Limbs) IsOdd() Choice {
	return Choice(a[0] & 1)
}

// IsEven returns 1 if the low bit of a is clear.
func (a Limbs) IsEven() Choice {
	return a.IsOdd().Not()
}

// Less returns 1 if a < b, by observing the borrow of a full
// subtraction chain.
func (a Limbs) Less(b Limbs) Choice {
	var borrow Word
	for i := range a {
		_, borrow = SubWW(a[i], b[i], borrow)
	}
	return Choice(borrow)
}

// LessEq returns 1 if a <= b.
func (a Limbs) LessEq(b Limbs) Choice {
	return b.Less(a).Not()
}

// Bit returns bit i of a (0 if out of range of the vector).
func (a Limbs) Bit(i uint) Word {
	j := int(i / WordBits)
	if j >= len(a) {
		return 0
	}
	return a[j] >> (i % WordBits) & 1
}

// Add sets a = a + b and returns the outgoing carry.
func (a Limbs) Add(b Limbs) Carry {
	var carry Word
	for i := range a {
		a[i], carry = AddWW(a[i], b[i], carry)
	}
	return carry
}

// Sub sets a = a - b and returns the outgoing borrow.
func (a Limbs) Sub(b Limbs) Borrow {
	var borrow Word
	for i := range a {
		a[i], borrow = SubWW(a[i], b[i], borrow)
	}
	return borrow
}

// Sum sets r = a + b and returns the outgoing carry. r may alias a or b.
func Sum(r, a, b Limbs) Carry {
	var carry Word
	for i := range r {
		r[i], carry = AddWW(a[i], b[i], carry)
	}
	return carry
}

// Diff sets r = a - b and returns the outgoing borrow. r may alias a or b.
func Diff(r, a, b Limbs) Borrow {
	var borrow Word
	for i := range r {
		r[i], borrow = SubWW(a[i], b[i], borrow)
	}
	return borrow
}

// CAdd computes a + b, commits the sum into a only if ctl is 1, and
// returns the carry of the attempted addition either way.
func (a Limbs) CAdd(b Limbs, ctl Choice) Carry {
	mask := ctl.Mask()
	var carry Word
	for i := range a {
		s, c := AddWW(a[i], b[i], carry)
		carry = c
		a[i] ^= (a[i] ^ s) & mask
	}
	return carry
}

// CSub computes a - b, commits the difference into a only if ctl is 1,
// and returns the borrow of the attempted subtraction either way.
func (a Limbs) CSub(b Limbs, ctl Choice) Borrow {
	mask := ctl.Mask()
	var borrow Word
	for i := range a {
		d, bb := SubWW(a[i], b[i], borrow)
		borrow = bb
		a[i] ^= (a[i] ^ d) & mask
	}
	return borrow
}

// CNeg replaces a with its two's complement if ctl is 1, as the fused
// chain (a XOR mask) + ctl.
func (a Limbs) CNeg(ctl Choice) {
	mask := ctl.Mask()
	carry := Word(ctl)
	for i := range a {
		a[i], carry = AddWW(a[i]^mask, 0, carry)
	}
}

// ShiftRight shifts a right by k bits, 0 < k < WordBits, dropping the
// low bits and shifting in zeroes at the top.
func (a Limbs) ShiftRight(k uint) {
	n := len(a)
	for i := 0; i < n-1; i++ {
		a[i] = a[i]>>k | a[i+1]<<(WordBits-k)
	}
	a[n-1] >>= k
}
