package field

import (
	"crypto/rand"
	"math/big"

	"github.com/afsheenb/ctfield/bigint"
	"github.com/afsheenb/ctfield/limb"
	"github.com/afsheenb/ctfield/monty"
)

// Shared element kernel. Fp and Fr are width-tagged views over the same
// routines; each routine takes the parameter block explicitly so the
// generic wrappers stay one-liners. Elements are BigInts in Montgomery
// form, maintained in [0, m).

// lim retags b to the field width (a no-op after first use; it makes the
// zero value of an element usable) and returns the live limb view.
func lim(p *Params, b *bigint.BigInt) limb.Limbs {
	if b.Bits() != p.Bits {
		b.SetWidth(p.Bits)
	}
	return b.Limbs()
}

func feSetZero(p *Params, z *bigint.BigInt) {
	lim(p, z).SetZero()
}

func feSetOne(p *Params, z *bigint.BigInt) {
	lim(p, z).Set(p.MontyOne.Limbs())
}

func feSet(p *Params, z, x *bigint.BigInt) {
	lim(p, z).Set(lim(p, x))
}

func feSetUint64(p *Params, z *bigint.BigInt, v uint64) {
	zl := lim(p, z)
	t := bigint.New(64)
	t.SetUint64(v)
	limb.Reduce(zl, t.Limbs(), p.Modulus.Limbs(), p.Bits)
	monty.Residue(zl, zl, p.R2.Limbs(), p.Modulus.Limbs(), p.Mu, p.NoCarryMul)
}

// feFromBigInt converts a natural-domain integer (any announced width)
// into a Montgomery-form element, reducing modulo m first.
func feFromBigInt(p *Params, z, x *bigint.BigInt) {
	t := *x
	zl := lim(p, z)
	limb.Reduce(zl, t.Limbs(), p.Modulus.Limbs(), p.Bits)
	monty.Residue(zl, zl, p.R2.Limbs(), p.Modulus.Limbs(), p.Mu, p.NoCarryMul)
}

// feToBigInt converts a Montgomery-form element back to its natural
// value.
func feToBigInt(p *Params, out, x *bigint.BigInt) {
	xl := lim(p, x)
	out.SetWidth(p.Bits)
	monty.Redc(out.Limbs(), xl, p.Modulus.Limbs(), p.Mu, p.NoCarryMul)
}

func feAdd(p *Params, z, x, y *bigint.BigInt) {
	zl, xl, yl := lim(p, z), lim(p, x), lim(p, y)
	c := limb.Sum(zl, xl, yl)
	zl.CSub(p.Modulus.Limbs(), limb.Choice(c).Or(zl.Less(p.Modulus.Limbs()).Not()))
}

func feSub(p *Params, z, x, y *bigint.BigInt) {
	zl, xl, yl := lim(p, z), lim(p, x), lim(p, y)
	b := limb.Diff(zl, xl, yl)
	zl.CAdd(p.Modulus.Limbs(), limb.Choice(b))
}

func feDouble(p *Params, z, x *bigint.BigInt) {
	feAdd(p, z, x, x)
}

func feNeg(p *Params, z, x *bigint.BigInt) {
	zl, xl := lim(p, z), lim(p, x)
	isZero := xl.IsZero()
	limb.Diff(zl, p.Modulus.Limbs(), xl)
	zl.CClear(isZero)
}

func feHalve(p *Params, z, x *bigint.BigInt) {
	zl := lim(p, z)
	zl.Set(lim(p, x))
	monty.DivMod2(zl, p.PrimePlus1Div2.Limbs())
}

func feMul(p *Params, z, x, y *bigint.BigInt) {
	monty.Mul(lim(p, z), lim(p, x), lim(p, y), p.Modulus.Limbs(), p.Mu, p.NoCarryMul)
}

func feSquare(p *Params, z, x *bigint.BigInt) {
	monty.Square(lim(p, z), lim(p, x), p.Modulus.Limbs(), p.Mu, p.NoCarryMul)
}

func feEqual(p *Params, x, y *bigint.BigInt) limb.Choice {
	return lim(p, x).Equal(lim(p, y))
}

func feIsZero(p *Params, x *bigint.BigInt) limb.Choice {
	return lim(p, x).IsZero()
}

func feIsOne(p *Params, x *bigint.BigInt) limb.Choice {
	return lim(p, x).Equal(p.MontyOne.Limbs())
}

func feIsMinusOne(p *Params, x *bigint.BigInt) limb.Choice {
	return lim(p, x).Equal(p.MontyPrimeMinus1.Limbs())
}

// fePow raises z to a secret exponent, constant-time. The scratch holds
// 2^5+1 window entries on the caller's stack.
func fePow(p *Params, z *bigint.BigInt, expBE []byte) {
	n := p.Words()
	var bufs [33][limb.MaxWords]limb.Word
	var scratch [33]limb.Limbs
	for i := range scratch {
		scratch[i] = bufs[i][:n]
	}
	monty.Pow(lim(p, z), expBE, p.Modulus.Limbs(), p.Mu, p.MontyOne.Limbs(), p.NoCarryMul, scratch[:])
}

// fePowUnsafe raises z to a public exponent, variable time.
func fePowUnsafe(p *Params, z *bigint.BigInt, expBE []byte) {
	n := p.Words()
	var bufs [17][limb.MaxWords]limb.Word
	var scratch [17]limb.Limbs
	for i := range scratch {
		scratch[i] = bufs[i][:n]
	}
	monty.PowUnsafeExponent(lim(p, z), expBE, p.Modulus.Limbs(), p.Mu, p.MontyOne.Limbs(), p.NoCarryMul, scratch[:])
}

// feInv inverts a Montgomery-form element into Montgomery form, with the
// R^2 adjustment factor folded into the GCD run. feInv of 0 is 0.
func feInv(p *Params, z, x *bigint.BigInt) {
	t := *x
	zl := lim(p, z)
	monty.ModInv(zl, lim(p, &t), p.R2.Limbs(), p.Modulus.Limbs(), p.PrimePlus1Div2.Limbs(), p.Bits)
}

// feLegendre returns the Legendre symbol of x: 0, 1 or -1. Variable time
// on the outcome only.
func feLegendre(p *Params, x *bigint.BigInt) int {
	var l bigint.BigInt
	feSet(p, &l, x)
	fePowUnsafe(p, &l, p.PrimeMinus1Div2BE)
	if feIsZero(p, &l).IsTrue() {
		return 0
	}
	if feIsOne(p, &l).IsTrue() {
		return 1
	}
	return -1
}

// feIsSquare applies the Euler criterion; 0 counts as a square.
func feIsSquare(p *Params, x *bigint.BigInt) limb.Choice {
	var l bigint.BigInt
	feSet(p, &l, x)
	fePowUnsafe(p, &l, p.PrimeMinus1Div2BE)
	return feIsOne(p, &l).Or(feIsZero(p, x))
}

func feCCopy(p *Params, z, x *bigint.BigInt, ctl limb.Choice) {
	lim(p, z).CCopy(lim(p, x), ctl)
}

func feCSwap(p *Params, z, x *bigint.BigInt, ctl limb.Choice) {
	lim(p, z).CSwap(lim(p, x), ctl)
}

// feSetBytes reduces a big-endian byte string (at most the field byte
// length) into the field and converts it to Montgomery form.
func feSetBytes(p *Params, z *bigint.BigInt, b []byte) {
	wordBits := uint(p.Words()) * limb.WordBits
	if uint(len(b))*8 > wordBits {
		panic("field: byte string exceeds field width")
	}
	// Top bits beyond the announced width would trip the width check, so
	// stage through a full-word view.
	var wide bigint.BigInt
	wide.SetWidth(wordBits)
	wide.SetBytesBE(b)
	feFromBigInt(p, z, &wide)
}

// feBytes writes the natural value of x as canonical big-endian bytes.
func feBytes(p *Params, x *bigint.BigInt, dst []byte) []byte {
	var t bigint.BigInt
	feToBigInt(p, &t, x)
	return t.BytesBE(dst)
}

func feSetBig(p *Params, z *bigint.BigInt, v *big.Int) {
	red := new(big.Int).Mod(v, p.Modulus.Big())
	var t bigint.BigInt
	t.SetWidth(p.Bits)
	t.SetBig(red)
	feFromBigInt(p, z, &t)
}

func feBig(p *Params, x *bigint.BigInt) *big.Int {
	var t bigint.BigInt
	feToBigInt(p, &t, x)
	return t.Big()
}

func feString(p *Params, x *bigint.BigInt) string {
	return feBig(p, x).String()
}

// feSetRandom draws a uniform-enough field element from crypto/rand:
// a full-width string reduced modulo m.
func feSetRandom(p *Params, z *bigint.BigInt) error {
	buf := make([]byte, (p.Bits+7)/8)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	if excess := uint(len(buf))*8 - p.Bits; excess > 0 {
		buf[0] &= 0xff >> excess
	}
	feSetBytes(p, z, buf)
	return nil
}
