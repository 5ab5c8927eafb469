// Package field implements arithmetic over odd prime fields in Montgomery
// form: the user-facing layer over the monty kernel. Field element types
// are generic over a curve tag, so elements of different curves (or of a
// curve's base and scalar fields) cannot be mixed; the announced widths
// and the precomputed constants travel with the tag.
package field

import (
	"math/bits"

	"github.com/afsheenb/ctfield/bigint"
	"github.com/afsheenb/ctfield/limb"
	"github.com/afsheenb/ctfield/monty"
)

// Curve is the parameter interface a curve tag implements. Tags are empty
// struct types; the accessors return the precomputed parameter blocks of
// the curve's two fields.
type Curve interface {
	BaseFieldParams() *Params
	ScalarFieldParams() *Params
}

// Params carries a field's modulus and every constant derived from it.
// All of it is public: parameters are curve constants, never secrets.
type Params struct {
	// Bits is the announced width; the modulus sets its (Bits-1)-th bit.
	Bits uint
	// Modulus is the odd prime m.
	Modulus bigint.BigInt
	// Mu is -1/m[0] mod 2^W, the Montgomery reduction constant.
	Mu limb.Word
	// MontyOne is R mod m, the Montgomery form of 1.
	MontyOne bigint.BigInt
	// R2 is R^2 mod m, the to-Montgomery conversion factor.
	R2 bigint.BigInt
	// MontyPrimeMinus1 is m-1 in Montgomery form.
	MontyPrimeMinus1 bigint.BigInt
	// PrimePlus1Div2 is (m+1)/2, the modular-halving addend.
	PrimePlus1Div2 bigint.BigInt

	// Big-endian exponent strings for the public-exponent powers,
	// padded to ceil(Bits/8) bytes.
	PrimeMinus1Div2BE []byte // Euler criterion
	PrimeMinus3Div4BE []byte // inverse sqrt, m = 3 mod 4
	PrimePlus1Div4BE  []byte // sqrt, m = 3 mod 4
	PrimeMinus5Div8BE []byte // Atkin sqrt, m = 5 mod 8

	// NoCarryMul is m[n-1] < 2^(W-1): the CIOS no-carry precondition.
	NoCarryMul bool
	// NoCarrySquare is m[n-1] < 2^(W-2).
	NoCarrySquare bool
	// SpareBits counts the unused top bits of the top limb.
	SpareBits uint
	// Mod8 is m mod 8; it selects the square-root specialization.
	Mod8 uint8

	// Tonelli-Shanks constants, present when m = 1 mod 8.
	// TwoAdicity is the largest e with 2^e dividing m-1, SMinus1Div2BE is
	// (s-1)/2 for the odd s = (m-1)/2^e, RootOfUnity a generator of the
	// 2^e torsion in Montgomery form.
	TwoAdicity    uint
	SMinus1Div2BE []byte
	RootOfUnity   bigint.BigInt
}

// Words returns the limb count of the field's elements.
func (p *Params) Words() int { return bigint.WordsRequired(p.Bits) }

// NewParams derives a parameter block from a modulus given in hex.
// It runs once per curve at package init; derivation may take its time
// and allocate, the resulting block is immutable afterwards.
func NewParams(widthBits uint, modulusHex string) *Params {
	p := &Params{Bits: widthBits}
	p.Modulus = bigint.New(widthBits)
	p.Modulus.SetHex(modulusHex)
	ml := p.Modulus.Limbs()
	if !ml.IsOdd().IsTrue() {
		panic("field: modulus must be odd")
	}
	if p.Modulus.Bit(widthBits-1) != 1 {
		panic("field: modulus must use its full declared width")
	}

	n := p.Modulus.Words()
	wTotal := uint(n) * limb.WordBits
	p.Mu = monty.NegInvModWord(ml[0])
	p.SpareBits = wTotal - widthBits
	p.NoCarryMul = ml[n-1] < 1<<(limb.WordBits-1)
	p.NoCarrySquare = ml[n-1] < 1<<(limb.WordBits-2)
	p.Mod8 = uint8(ml[0] & 7)

	// R mod m and R^2 mod m: start from 2^(Bits-1), the largest power of
	// two below m, and double-mod up to 2^(W*n) and 2^(2*W*n).
	pw := bigint.New(widthBits)
	pw.Limbs()[(widthBits-1)/limb.WordBits] = 1 << ((widthBits - 1) % limb.WordBits)
	for i := uint(0); i < wTotal-widthBits+1; i++ {
		doubleMod(&pw, &p.Modulus)
	}
	p.MontyOne = bigint.New(widthBits)
	p.MontyOne.Set(&pw)
	for i := uint(0); i < wTotal; i++ {
		doubleMod(&pw, &p.Modulus)
	}
	p.R2 = pw

	// m-1 in Montgomery form is -R = m - (R mod m).
	p.MontyPrimeMinus1 = bigint.New(widthBits)
	p.MontyPrimeMinus1.Set(&p.Modulus)
	p.MontyPrimeMinus1.Sub(&p.MontyOne)

	// (m+1)/2 = (m >> 1) + 1 for odd m.
	one := bigint.New(widthBits)
	one.SetOne()
	p.PrimePlus1Div2 = bigint.New(widthBits)
	p.PrimePlus1Div2.Set(&p.Modulus)
	p.PrimePlus1Div2.ShiftRight(1)
	p.PrimePlus1Div2.Add(&one)

	p.PrimeMinus1Div2BE = subShiftBytes(&p.Modulus, 1, 1)
	p.PrimeMinus3Div4BE = subShiftBytes(&p.Modulus, 3, 2)
	p.PrimeMinus5Div8BE = subShiftBytes(&p.Modulus, 5, 3)

	// (m+1)/4, meaningful for m = 3 mod 4.
	pp14 := bigint.New(widthBits)
	pp14.Set(&p.PrimePlus1Div2)
	pp14.ShiftRight(1)
	p.PrimePlus1Div4BE = bigBytes(&pp14)

	if p.Mod8 == 1 {
		p.deriveTonelliShanks()
	}
	return p
}

// doubleMod doubles t modulo m, assuming t < m.
func doubleMod(t, m *bigint.BigInt) {
	c := t.Add(t)
	t.CSub(m, limb.Choice(c).Or(t.Less(m).Not()))
}

// subShiftBytes returns (m - k) >> shift as big-endian bytes padded to
// the modulus byte length.
func subShiftBytes(m *bigint.BigInt, k uint64, shift uint) []byte {
	t := bigint.New(m.Bits())
	t.Set(m)
	d := bigint.New(m.Bits())
	d.SetUint64(k)
	t.Sub(&d)
	t.ShiftRightMulti(shift)
	return bigBytes(&t)
}

func bigBytes(t *bigint.BigInt) []byte {
	out := make([]byte, (t.Bits()+7)/8)
	t.BytesBE(out)
	return out
}

// deriveTonelliShanks computes the 2-adicity decomposition m-1 = 2^e * s
// and a 2^e-th root of unity: the smallest quadratic non-residue raised
// to the s-th power, located with the Euler criterion. Variable time on
// public curve constants only.
func (p *Params) deriveTonelliShanks() {
	n := p.Words()

	mm1 := bigint.New(p.Bits)
	mm1.Set(&p.Modulus)
	one := bigint.New(p.Bits)
	one.SetOne()
	mm1.Sub(&one)

	e := uint(0)
	for _, w := range mm1.Limbs() {
		if w == 0 {
			e += limb.WordBits
			continue
		}
		e += uint(bits.TrailingZeros(uint(w)))
		break
	}
	p.TwoAdicity = e

	s := bigint.New(p.Bits)
	s.Set(&mm1)
	s.ShiftRightMulti(e)
	sBE := bigBytes(&s)
	sm1d2 := bigint.New(p.Bits)
	sm1d2.Set(&s)
	sm1d2.ShiftRight(1)
	p.SMinus1Div2BE = bigBytes(&sm1d2)

	// Fixed-window scratch for the searches below.
	var bufs [17][limb.MaxWords]limb.Word
	scratch := make([]limb.Limbs, len(bufs))
	for i := range scratch {
		scratch[i] = bufs[i][:n]
	}

	ml := p.Modulus.Limbs()
	cand := bigint.New(p.Bits)
	euler := bigint.New(p.Bits)
	for c := uint64(2); ; c++ {
		cand.SetUint64(c)
		monty.Residue(cand.Limbs(), cand.Limbs(), p.R2.Limbs(), ml, p.Mu, p.NoCarryMul)
		euler.Set(&cand)
		monty.PowUnsafeExponent(euler.Limbs(), p.PrimeMinus1Div2BE, ml, p.Mu, p.MontyOne.Limbs(), p.NoCarryMul, scratch)
		if euler.Equal(&p.MontyPrimeMinus1).IsTrue() {
			// c is a non-residue; its s-th power generates the 2^e torsion.
			monty.PowUnsafeExponent(cand.Limbs(), sBE, ml, p.Mu, p.MontyOne.Limbs(), p.NoCarryMul, scratch)
			p.RootOfUnity = bigint.New(p.Bits)
			p.RootOfUnity.Set(&cand)
			return
		}
	}
}
