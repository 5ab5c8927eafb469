package monty

import "github.com/afsheenb/ctfield/limb"

// Constant-time modular inversion over an odd modulus, after Möller's
// variant of the binary extended Euclidean algorithm: one fixed 2*bits
// iteration loop whose state transitions are conditional subtracts,
// negates and swaps, never branches.

// ModInv sets z to F * a^-1 mod m, running exactly 2*bits iterations.
// F is the adjustment factor: 1 for a plain inverse, R^2 mod m to invert
// a Montgomery-form value back into Montgomery form, R mod m to invert
// out of the Montgomery domain. mp1div2 is the precomputed (m+1)/2 and
// bits the announced width of m. ModInv(0) = 0. z must not alias a, F,
// m or mp1div2.
func ModInv(z, a, f, m, mp1div2 limb.Limbs, bits uint) {
	n := len(m)
	var ab, bb, ub [limb.MaxWords]limb.Word
	av := limb.Limbs(ab[:n])
	bv := limb.Limbs(bb[:n])
	uv := limb.Limbs(ub[:n])
	av.Set(a)
	bv.Set(m)
	uv.Set(f)
	z.SetZero() // v

	// Loop invariant (mod m): u*a0 = a*F and v*a0 = b*F, with gcd(a, b)
	// preserved and b odd. When a reaches 0, b holds gcd(a0, m) and v the
	// adjusted inverse.
	for i := uint(0); i < 2*bits; i++ {
		isOdd := av.IsOdd()

		// if a odd: a -= b; when that underflows, the true step is
		// (a, b) <- (b - a, a), recovered by a negate and a subtract.
		borrow := av.CSub(bv, isOdd)
		swap := isOdd.And(limb.Choice(borrow))
		av.CNeg(swap)        // a <- b - a_old
		bv.CSub(av, swap)    // b <- a_old
		uv.CSwap(z, swap)

		av.ShiftRight(1)

		// if a was odd: u <- u - v mod m
		ub2 := uv.CSub(z, isOdd)
		uv.CAdd(m, isOdd.And(limb.Choice(ub2)))

		// u <- u/2 mod m
		DivMod2(uv, mp1div2)
	}
}

// DivMod2 halves a modulo the odd modulus m, using the precomputed
// (m+1)/2: shift first, then add (m+1)/2 back if the dropped bit was set.
// The addend is below m, so the sum stays in range.
func DivMod2(a, mp1div2 limb.Limbs) {
	wasOdd := a.IsOdd()
	a.ShiftRight(1)
	a.CAdd(mp1div2, wasOdd)
}
