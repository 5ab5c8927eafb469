package field

import (
	"math/big"

	"github.com/afsheenb/ctfield/bigint"
	"github.com/afsheenb/ctfield/limb"
)

// Fr is an element of the scalar field (the subgroup order) of curve C,
// in Montgomery form. Structurally identical to Fp but a distinct type,
// so scalars and coordinates cannot be mixed.
type Fr[C Curve] struct {
	v bigint.BigInt
}

func (z *Fr[C]) params() *Params {
	var c C
	return c.ScalarFieldParams()
}

func (z *Fr[C]) SetZero() *Fr[C] { feSetZero(z.params(), &z.v); return z }
func (z *Fr[C]) SetOne() *Fr[C]  { feSetOne(z.params(), &z.v); return z }

func (z *Fr[C]) SetUint64(v uint64) *Fr[C] {
	feSetUint64(z.params(), &z.v, v)
	return z
}

func (z *Fr[C]) Set(x *Fr[C]) *Fr[C] { feSet(z.params(), &z.v, &x.v); return z }

func (z *Fr[C]) FromBigInt(x *bigint.BigInt) *Fr[C] {
	feFromBigInt(z.params(), &z.v, x)
	return z
}

func (z *Fr[C]) ToBigInt(out *bigint.BigInt) {
	feToBigInt(z.params(), out, &z.v)
}

func (z *Fr[C]) SetBytes(b []byte) *Fr[C] { feSetBytes(z.params(), &z.v, b); return z }

func (z *Fr[C]) Bytes(dst []byte) []byte { return feBytes(z.params(), &z.v, dst) }

func (z *Fr[C]) SetBig(v *big.Int) *Fr[C] { feSetBig(z.params(), &z.v, v); return z }
func (z *Fr[C]) Big() *big.Int            { return feBig(z.params(), &z.v) }
func (z *Fr[C]) String() string           { return feString(z.params(), &z.v) }

func (z *Fr[C]) SetRandom() (*Fr[C], error) {
	if err := feSetRandom(z.params(), &z.v); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *Fr[C]) Add(x, y *Fr[C]) *Fr[C] { feAdd(z.params(), &z.v, &x.v, &y.v); return z }
func (z *Fr[C]) Sub(x, y *Fr[C]) *Fr[C] { feSub(z.params(), &z.v, &x.v, &y.v); return z }
func (z *Fr[C]) Double(x *Fr[C]) *Fr[C] { feDouble(z.params(), &z.v, &x.v); return z }
func (z *Fr[C]) Neg(x *Fr[C]) *Fr[C]    { feNeg(z.params(), &z.v, &x.v); return z }
func (z *Fr[C]) Halve(x *Fr[C]) *Fr[C]  { feHalve(z.params(), &z.v, &x.v); return z }
func (z *Fr[C]) Mul(x, y *Fr[C]) *Fr[C] { feMul(z.params(), &z.v, &x.v, &y.v); return z }
func (z *Fr[C]) Square(x *Fr[C]) *Fr[C] { feSquare(z.params(), &z.v, &x.v); return z }

func (z *Fr[C]) MulInt(x *Fr[C], k int) *Fr[C] {
	feMulInt(z.params(), &z.v, &x.v, k)
	return z
}

func (z *Fr[C]) CCopy(x *Fr[C], ctl limb.Choice) { feCCopy(z.params(), &z.v, &x.v, ctl) }
func (z *Fr[C]) CSwap(x *Fr[C], ctl limb.Choice) { feCSwap(z.params(), &z.v, &x.v, ctl) }

func (z *Fr[C]) Equal(x *Fr[C]) limb.Choice { return feEqual(z.params(), &z.v, &x.v) }
func (z *Fr[C]) IsZero() limb.Choice        { return feIsZero(z.params(), &z.v) }
func (z *Fr[C]) IsOne() limb.Choice         { return feIsOne(z.params(), &z.v) }
func (z *Fr[C]) IsMinusOne() limb.Choice    { return feIsMinusOne(z.params(), &z.v) }

func (z *Fr[C]) Pow(x *Fr[C], e *bigint.BigInt) *Fr[C] {
	var buf [bigint.MaxWords * limb.WordBytes]byte
	z.Set(x)
	fePow(z.params(), &z.v, e.BytesBE(buf[:]))
	return z
}

func (z *Fr[C]) PowUnsafeExponent(x *Fr[C], expBE []byte) *Fr[C] {
	z.Set(x)
	fePowUnsafe(z.params(), &z.v, expBE)
	return z
}

func (z *Fr[C]) Inverse(x *Fr[C]) *Fr[C] {
	feInv(z.params(), &z.v, &x.v)
	return z
}

func (z *Fr[C]) Legendre() int { return feLegendre(z.params(), &z.v) }

func (z *Fr[C]) IsSquare() limb.Choice { return feIsSquare(z.params(), &z.v) }

func (z *Fr[C]) Sqrt(x *Fr[C]) *Fr[C] {
	feSqrt(z.params(), &z.v, &x.v)
	return z
}

func (z *Fr[C]) SqrtIfSquare(x *Fr[C]) limb.Choice {
	return feSqrtIfSquare(z.params(), &z.v, &x.v)
}

func (z *Fr[C]) InvSqrt(x *Fr[C]) *Fr[C] {
	feInvSqrt(z.params(), &z.v, &x.v)
	return z
}

func (z *Fr[C]) InvSqrtIfSquare(x *Fr[C]) limb.Choice {
	return feInvSqrtIfSquare(z.params(), &z.v, &x.v)
}

func (z *Fr[C]) SqrtRatioIfSquare(u, v *Fr[C]) limb.Choice {
	return feSqrtRatioIfSquare(z.params(), &z.v, &u.v, &v.v)
}

// BatchInvertFr mirrors BatchInvertFp for scalars.
func BatchInvertFr[C Curve](a []Fr[C]) []Fr[C] {
	res := make([]Fr[C], len(a))
	if len(a) == 0 {
		return res
	}
	zeroes := make([]bool, len(a))
	var acc Fr[C]
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
