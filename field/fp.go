package field

import (
	"math/big"

	"github.com/afsheenb/ctfield/bigint"
	"github.com/afsheenb/ctfield/limb"
)

// Fp is an element of the base field of curve C, in Montgomery form.
// The zero value is 0. Methods follow the z-receiver convention: the
// receiver takes the result and is returned for chaining.
type Fp[C Curve] struct {
	v bigint.BigInt
}

func (z *Fp[C]) params() *Params {
	var c C
	return c.BaseFieldParams()
}

func (z *Fp[C]) SetZero() *Fp[C] { feSetZero(z.params(), &z.v); return z }
func (z *Fp[C]) SetOne() *Fp[C]  { feSetOne(z.params(), &z.v); return z }

func (z *Fp[C]) SetUint64(v uint64) *Fp[C] {
	feSetUint64(z.params(), &z.v, v)
	return z
}

func (z *Fp[C]) Set(x *Fp[C]) *Fp[C] { feSet(z.params(), &z.v, &x.v); return z }

// FromBigInt converts a natural-domain integer into Montgomery form,
// reducing modulo the field characteristic.
func (z *Fp[C]) FromBigInt(x *bigint.BigInt) *Fp[C] {
	feFromBigInt(z.params(), &z.v, x)
	return z
}

// ToBigInt stores the natural value of z into out.
func (z *Fp[C]) ToBigInt(out *bigint.BigInt) {
	feToBigInt(z.params(), out, &z.v)
}

func (z *Fp[C]) SetBytes(b []byte) *Fp[C] { feSetBytes(z.params(), &z.v, b); return z }

// Bytes writes the canonical big-endian encoding of z into dst and
// returns the used prefix. dst needs ceil(bits/8) bytes.
func (z *Fp[C]) Bytes(dst []byte) []byte { return feBytes(z.params(), &z.v, dst) }

func (z *Fp[C]) SetBig(v *big.Int) *Fp[C] { feSetBig(z.params(), &z.v, v); return z }
func (z *Fp[C]) Big() *big.Int            { return feBig(z.params(), &z.v) }
func (z *Fp[C]) String() string           { return feString(z.params(), &z.v) }

// SetRandom draws z from the field via crypto/rand: a Bits-wide random
// value reduced modulo m. The draw is not exactly uniform; residues below
// 2^Bits - m are twice as likely as the others.
func (z *Fp[C]) SetRandom() (*Fp[C], error) {
	if err := feSetRandom(z.params(), &z.v); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *Fp[C]) Add(x, y *Fp[C]) *Fp[C]  { feAdd(z.params(), &z.v, &x.v, &y.v); return z }
func (z *Fp[C]) Sub(x, y *Fp[C]) *Fp[C]  { feSub(z.params(), &z.v, &x.v, &y.v); return z }
func (z *Fp[C]) Double(x *Fp[C]) *Fp[C]  { feDouble(z.params(), &z.v, &x.v); return z }
func (z *Fp[C]) Neg(x *Fp[C]) *Fp[C]     { feNeg(z.params(), &z.v, &x.v); return z }
func (z *Fp[C]) Halve(x *Fp[C]) *Fp[C]   { feHalve(z.params(), &z.v, &x.v); return z }
func (z *Fp[C]) Mul(x, y *Fp[C]) *Fp[C]  { feMul(z.params(), &z.v, &x.v, &y.v); return z }
func (z *Fp[C]) Square(x *Fp[C]) *Fp[C]  { feSquare(z.params(), &z.v, &x.v); return z }

// MulInt sets z = k * x for a literal k in [-12, 12], as a doubling chain.
func (z *Fp[C]) MulInt(x *Fp[C], k int) *Fp[C] {
	feMulInt(z.params(), &z.v, &x.v, k)
	return z
}

func (z *Fp[C]) CCopy(x *Fp[C], ctl limb.Choice) { feCCopy(z.params(), &z.v, &x.v, ctl) }
func (z *Fp[C]) CSwap(x *Fp[C], ctl limb.Choice) { feCSwap(z.params(), &z.v, &x.v, ctl) }

func (z *Fp[C]) Equal(x *Fp[C]) limb.Choice { return feEqual(z.params(), &z.v, &x.v) }
func (z *Fp[C]) IsZero() limb.Choice        { return feIsZero(z.params(), &z.v) }
func (z *Fp[C]) IsOne() limb.Choice         { return feIsOne(z.params(), &z.v) }
func (z *Fp[C]) IsMinusOne() limb.Choice    { return feIsMinusOne(z.params(), &z.v) }

// Pow sets z = x^e in constant time; the exponent value stays secret,
// only its announced width leaks.
func (z *Fp[C]) Pow(x *Fp[C], e *bigint.BigInt) *Fp[C] {
	var buf [bigint.MaxWords * limb.WordBytes]byte
	z.Set(x)
	fePow(z.params(), &z.v, e.BytesBE(buf[:]))
	return z
}

// PowUnsafeExponent sets z = x^e for a public big-endian exponent,
// variable time in the exponent bits.
func (z *Fp[C]) PowUnsafeExponent(x *Fp[C], expBE []byte) *Fp[C] {
	z.Set(x)
	fePowUnsafe(z.params(), &z.v, expBE)
	return z
}

// Inverse sets z = 1/x (Montgomery form in, Montgomery form out).
// Inverse of 0 is 0.
func (z *Fp[C]) Inverse(x *Fp[C]) *Fp[C] {
	feInv(z.params(), &z.v, &x.v)
	return z
}

// Legendre returns the Legendre symbol of z: 1, -1, or 0 for z = 0.
func (z *Fp[C]) Legendre() int { return feLegendre(z.params(), &z.v) }

// IsSquare applies the Euler criterion; 0 counts as a square.
func (z *Fp[C]) IsSquare() limb.Choice { return feIsSquare(z.params(), &z.v) }

// Sqrt sets z to a square root of x; the result is garbage when x is not
// a square (use SqrtIfSquare to know).
func (z *Fp[C]) Sqrt(x *Fp[C]) *Fp[C] {
	feSqrt(z.params(), &z.v, &x.v)
	return z
}

// SqrtIfSquare sets z to a square root of x and returns 1 when one
// exists; otherwise z = x and the return is 0.
func (z *Fp[C]) SqrtIfSquare(x *Fp[C]) limb.Choice {
	return feSqrtIfSquare(z.params(), &z.v, &x.v)
}

// InvSqrt sets z = 1/sqrt(x); garbage when x is not a non-zero square.
func (z *Fp[C]) InvSqrt(x *Fp[C]) *Fp[C] {
	feInvSqrt(z.params(), &z.v, &x.v)
	return z
}

// InvSqrtIfSquare sets z = 1/sqrt(x) and returns 1 when x is a non-zero
// square; otherwise z = x and the return is 0.
func (z *Fp[C]) InvSqrtIfSquare(x *Fp[C]) limb.Choice {
	return feInvSqrtIfSquare(z.params(), &z.v, &x.v)
}

// SqrtRatioIfSquare sets z = sqrt(u/v) and returns 1 when u/v is a
// square; the fused form saves the inversion of v.
func (z *Fp[C]) SqrtRatioIfSquare(u, v *Fp[C]) limb.Choice {
	return feSqrtRatioIfSquare(z.params(), &z.v, &u.v, &v.v)
}

// BatchInvertFp inverts every element of a with a single field inversion
// and 3n multiplications, n being the number of non-zero entries. Zero
// entries invert to zero. Variable time
// in which entries are zero.
func BatchInvertFp[C Curve](a []Fp[C]) []Fp[C] {
	res := make([]Fp[C], len(a))
	if len(a) == 0 {
		return res
	}
	zeroes := make([]bool, len(a))
	var acc Fp[C]
	acc.SetOne()
	for i := range a {
		if a[i].IsZero().IsTrue() {
			zeroes[i] = true
			continue
		}
		res[i].Set(&acc)
		acc.Mul(&acc, &a[i])
	}
	acc.Inverse(&acc)
	for i := len(a) - 1; i >= 0; i-- {
		if zeroes[i] {
			continue
		}
		res[i].Mul(&res[i], &acc)
		acc.Mul(&acc, &a[i])
	}
	return res
}
