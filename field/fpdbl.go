package field

import (
	"github.com/afsheenb/ctfield/limb"
	"github.com/afsheenb/ctfield/monty"
)

// FpDbl is an unreduced double-width intermediate over the base field of
// C: a 2n-limb value in [0, R*m) with R = 2^(W*n). Extension-field
// towers accumulate products here and pay the Montgomery reduction once
// per tower coefficient instead of once per multiplication.
type FpDbl[C Curve] struct {
	v [2 * limb.MaxWords]limb.Word
}

func (z *FpDbl[C]) params() *Params {
	var c C
	return c.BaseFieldParams()
}

func (z *FpDbl[C]) limbs(p *Params) limb.Limbs {
	return z.v[: 2*p.Words() : 2*p.Words()]
}

// highHalf views the words weighing 2^(W*n) and up: the half the modular
// correction of AddMod/SubMod acts on, since R*m has a zero low half.
func (z *FpDbl[C]) highHalf(p *Params) limb.Limbs {
	return z.v[p.Words() : 2*p.Words() : 2*p.Words()]
}

func (z *FpDbl[C]) SetZero() *FpDbl[C] {
	z.limbs(z.params()).SetZero()
	return z
}

func (z *FpDbl[C]) Set(x *FpDbl[C]) *FpDbl[C] {
	z.v = x.v
	return z
}

func (z *FpDbl[C]) CCopy(x *FpDbl[C], ctl limb.Choice) {
	p := z.params()
	z.limbs(p).CCopy(x.limbs(p), ctl)
}

func (z *FpDbl[C]) Equal(x *FpDbl[C]) limb.Choice {
	p := z.params()
	return z.limbs(p).Equal(x.limbs(p))
}

// MulWide sets z to the plain 2n-word product of x and y (both Montgomery
// form, so z = x*y*R^2 scaled; Reduce brings it back to x*y*R).
func (z *FpDbl[C]) MulWide(x, y *Fp[C]) *FpDbl[C] {
	p := z.params()
	limb.Prod(z.limbs(p), lim(p, &x.v), lim(p, &y.v))
	return z
}

// SquareWide sets z to the 2n-word square of x.
func (z *FpDbl[C]) SquareWide(x *Fp[C]) *FpDbl[C] {
	p := z.params()
	limb.Square(z.limbs(p), lim(p, &x.v))
	return z
}

// Add sets z = x + y without any reduction. The caller owns the range
// analysis; the sum must stay below 2^(2*W*n).
func (z *FpDbl[C]) Add(x, y *FpDbl[C]) *FpDbl[C] {
	p := z.params()
	limb.Sum(z.limbs(p), x.limbs(p), y.limbs(p))
	return z
}

// Sub sets z = x - y without reduction; x must not be below y.
func (z *FpDbl[C]) Sub(x, y *FpDbl[C]) *FpDbl[C] {
	p := z.params()
	limb.Diff(z.limbs(p), x.limbs(p), y.limbs(p))
	return z
}

// AddMod sets z = x + y and folds the result back into [0, R*m) with one
// conditional subtraction of R*m, which only touches the high half.
func (z *FpDbl[C]) AddMod(x, y *FpDbl[C]) *FpDbl[C] {
	p := z.params()
	c := limb.Sum(z.limbs(p), x.limbs(p), y.limbs(p))
	hi := z.highHalf(p)
	ml := p.Modulus.Limbs()
	hi.CSub(ml, limb.Choice(c).Or(hi.Less(ml).Not()))
	return z
}

// SubMod sets z = x - y, adding R*m back on borrow to stay in [0, R*m).
func (z *FpDbl[C]) SubMod(x, y *FpDbl[C]) *FpDbl[C] {
	p := z.params()
	b := limb.Diff(z.limbs(p), x.limbs(p), y.limbs(p))
	z.highHalf(p).CAdd(p.Modulus.Limbs(), limb.Choice(b))
	return z
}

// Reduce performs the deferred Montgomery reduction: r = z / R mod m.
func (z *FpDbl[C]) Reduce(r *Fp[C]) *Fp[C] {
	p := z.params()
	monty.Redc2x(lim(p, &r.v), z.limbs(p), p.Modulus.Limbs(), p.Mu)
	return r
}
