// Package bigint wraps limb vectors with an announced bit width. The width
// is public metadata: it sizes the vector, drives the loop bounds of every
// operation, and guards against mixing operands of different widths. The
// limb values themselves stay secret; all lifted operations inherit the
// constant-time behavior of package limb.
package bigint

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/afsheenb/ctfield/limb"
)

// MaxWords is the widest supported value, in words.
const MaxWords = limb.MaxWords

// MaxBits is the widest supported announced width.
const MaxBits = MaxWords * limb.WordBits

// WordsRequired returns the number of words needed for an announced width.
func WordsRequired(bits uint) int {
	return int((bits + limb.WordBits - 1) / limb.WordBits)
}

// BigInt is a fixed-width unsigned integer: a limb vector tagged with the
// announced bit width it was declared at. Two BigInts interoperate only if
// their announced widths match; the cross-width exceptions are Prod,
// ProdHighWords, Square, Reduce and CopyTruncatedFrom.
type BigInt struct {
	bits  uint
	limbs [MaxWords]limb.Word
}

// New returns a zero BigInt with the given announced width.
func New(bits uint) BigInt {
	if bits == 0 || bits > MaxBits {
		panic("bigint: unsupported bit width")
	}
	return BigInt{bits: bits}
}

// Bits returns the announced bit width.
func (z *BigInt) Bits() uint { return z.bits }

// Words returns the number of limbs backing the announced width.
func (z *BigInt) Words() int { return WordsRequired(z.bits) }

// Limbs returns the live limb vector. Mutating it mutates z.
func (z *BigInt) Limbs() limb.Limbs { return z.limbs[:z.Words()] }

// SetWidth retags z with a new announced width, preserving limb content.
// Words beyond the new width are cleared.
func (z *BigInt) SetWidth(bits uint) {
	if bits == 0 || bits > MaxBits {
		panic("bigint: unsupported bit width")
	}
	z.bits = bits
	for i := z.Words(); i < MaxWords; i++ {
		z.limbs[i] = 0
	}
}

func matchWidth(x, y *BigInt) {
	if x.bits != y.bits {
		panic("bigint: mismatched announced bit widths")
	}
}

// SetZero sets z to 0.
func (z *BigInt) SetZero() *BigInt {
	z.Limbs().SetZero()
	return z
}

// SetOne sets z to 1.
func (z *BigInt) SetOne() *BigInt {
	z.Limbs().SetOne()
	return z
}

// SetUint64 sets z to v.
func (z *BigInt) SetUint64(v uint64) *BigInt {
	ls := z.Limbs()
	ls.SetZero()
	ls[0] = limb.Word(v)
	if limb.WordBits == 32 {
		hi := limb.Word(v >> 32)
		if len(ls) > 1 {
			ls[1] = hi
		} else if hi != 0 {
			panic("bigint: uint64 value exceeds announced width")
		}
	}
	return z
}

// Set copies x into z. The announced widths must match.
func (z *BigInt) Set(x *BigInt) *BigInt {
	matchWidth(z, x)
	z.limbs = x.limbs
	return z
}

// CopyTruncatedFrom copies x into z keeping z's announced width: common
// low words are copied, higher words of z are cleared, higher words of x
// are dropped.
func (z *BigInt) CopyTruncatedFrom(x *BigInt) *BigInt {
	zl, xl := z.Limbs(), x.Limbs()
	n := len(zl)
	if len(xl) < n {
		n = len(xl)
	}
	zl.SetZero()
	copy(zl[:n], xl[:n])
	return z
}

// Lifted limb operations. Same-width only.

func (z *BigInt) Add(x *BigInt) limb.Carry {
	matchWidth(z, x)
	return z.Limbs().Add(x.Limbs())
}

func (z *BigInt) Sub(x *BigInt) limb.Borrow {
	matchWidth(z, x)
	return z.Limbs().Sub(x.Limbs())
}

func (z *BigInt) CAdd(x *BigInt, ctl limb.Choice) limb.Carry {
	matchWidth(z, x)
	return z.Limbs().CAdd(x.Limbs(), ctl)
}

func (z *BigInt) CSub(x *BigInt, ctl limb.Choice) limb.Borrow {
	matchWidth(z, x)
	return z.Limbs().CSub(x.Limbs(), ctl)
}

func (z *BigInt) CNeg(ctl limb.Choice) {
	z.Limbs().CNeg(ctl)
}

func (z *BigInt) CCopy(x *BigInt, ctl limb.Choice) {
	matchWidth(z, x)
	z.Limbs().CCopy(x.Limbs(), ctl)
}

func (z *BigInt) CSwap(x *BigInt, ctl limb.Choice) {
	matchWidth(z, x)
	z.Limbs().CSwap(x.Limbs(), ctl)
}

func (z *BigInt) Equal(x *BigInt) limb.Choice {
	matchWidth(z, x)
	return z.Limbs().Equal(x.Limbs())
}

func (z *BigInt) Less(x *BigInt) limb.Choice {
	matchWidth(z, x)
	return z.Limbs().Less(x.Limbs())
}

func (z *BigInt) LessEq(x *BigInt) limb.Choice {
	matchWidth(z, x)
	return z.Limbs().LessEq(x.Limbs())
}

func (z *BigInt) IsZero() limb.Choice { return z.Limbs().IsZero() }
func (z *BigInt) IsOne() limb.Choice  { return z.Limbs().IsOne() }
func (z *BigInt) IsOdd() limb.Choice  { return z.Limbs().IsOdd() }
func (z *BigInt) IsEven() limb.Choice { return z.Limbs().IsEven() }

func (z *BigInt) Bit(i uint) limb.Word { return z.Limbs().Bit(i) }

// ShiftRight shifts z right by k bits, 0 < k < WordBits.
func (z *BigInt) ShiftRight(k uint) {
	z.Limbs().ShiftRight(k)
}

// ShiftRightMulti shifts z right by any bit count, as a public-count loop
// of word-bounded shifts.
func (z *BigInt) ShiftRightMulti(k uint) {
	for k >= limb.WordBits - 1 {
		z.Limbs().ShiftRight(limb.WordBits - 1)
		k -= limb.WordBits - 1
	}
	if k > 0 {
		z.Limbs().ShiftRight(k)
	}
}

// Cross-width operations.

// Prod sets z = x * y truncated to z's width.
func (z *BigInt) Prod(x, y *BigInt) *BigInt {
	limb.Prod(z.Limbs(), x.Limbs(), y.Limbs())
	return z
}

// ProdHighWords sets z to words [lowest, lowest+z.Words()) of x * y.
func (z *BigInt) ProdHighWords(x, y *BigInt, lowest int) *BigInt {
	limb.ProdHighWords(z.Limbs(), x.Limbs(), y.Limbs(), lowest)
	return z
}

// Square sets z = x * x truncated to z's width.
func (z *BigInt) Square(x *BigInt) *BigInt {
	limb.Square(z.Limbs(), x.Limbs())
	return z
}

// Reduce sets z = x mod m. z and m must share their announced width and
// m must use all its declared bits.
func (z *BigInt) Reduce(x, m *BigInt) *BigInt {
	matchWidth(z, m)
	limb.Reduce(z.Limbs(), x.Limbs(), m.Limbs(), m.bits)
	return z
}

// Byte and big.Int bridges.

// SetBytesBE sets z from canonical big-endian bytes. The value must fit
// the announced width.
func (z *BigInt) SetBytesBE(b []byte) *BigInt {
	ls := z.Limbs()
	ls.SetZero()
	for i := 0; i < len(b); i++ {
		v := limb.Word(b[len(b)-1-i])
		w := i / limb.WordBytes
		if w >= len(ls) {
			if v != 0 {
				panic("bigint: bytes exceed announced width")
			}
			continue
		}
		ls[w] |= v << (uint(i%limb.WordBytes) * 8)
	}
	if excess := uint(z.Words())*limb.WordBits - z.bits; excess > 0 {
		if ls[len(ls)-1]>>(limb.WordBits-excess) != 0 {
			panic("bigint: bytes exceed announced width")
		}
	}
	return z
}

// BytesBE writes z as canonical big-endian bytes, padded to
// ceil(bits/8), into dst, and returns the used prefix.
func (z *BigInt) BytesBE(dst []byte) []byte {
	size := int((z.bits + 7) / 8)
	out := dst[:size]
	ls := z.Limbs()
	for i := 0; i < size; i++ {
		w := i / limb.WordBytes
		out[size-1-i] = byte(ls[w] >> (uint(i%limb.WordBytes) * 8))
	}
	return out
}

// SetHex sets z from a hex string, with or without an 0x prefix.
// Intended for parameter tables and tests; panics on malformed input.
func (z *BigInt) SetHex(s string) *BigInt {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("bigint: bad hex literal: " + err.Error())
	}
	return z.SetBytesBE(b)
}

// SetBig sets z from v, which must be non-negative and fit the announced
// width.
func (z *BigInt) SetBig(v *big.Int) *BigInt {
	if v.Sign() < 0 {
		panic("bigint: negative big.Int")
	}
	var buf [MaxWords * limb.WordBytes]byte
	b := v.Bytes()
	if len(b) > len(buf) {
		panic("bigint: big.Int exceeds announced width")
	}
	return z.SetBytesBE(b)
}

// Big returns z as a big.Int. Test and bridge use only.
func (z *BigInt) Big() *big.Int {
	var buf [MaxWords*limb.WordBytes + 8]byte
	return new(big.Int).SetBytes(z.BytesBE(buf[:]))
}

// Uint64 returns the low 64 bits of z.
func (z *BigInt) Uint64() uint64 {
	ls := z.Limbs()
	v := uint64(ls[0])
	if limb.WordBits == 32 && len(ls) > 1 {
		v |= uint64(ls[1]) << 32
	}
	return v
}
