// Package monty implements Montgomery-form modular arithmetic over odd
// moduli: fused multiply-and-reduce, conversions in and out of the
// Montgomery domain, double-width reduction, fixed-window exponentiation
// and constant-time modular inversion. Operands are limb vectors whose
// length equals the modulus length; every routine is constant-time with
// respect to operand values.
//
// Two multiplication kernels coexist. When the modulus leaves its top bit
// clear (m[n-1] < 2^(W-1)) the CIOS no-carry variant applies: the final
// limb of each round needs no carry register. Otherwise the FIPS
// product-scanning variant runs with an explicit spill word. Both produce
// bit-identical results on all defined inputs.
package monty

import "github.com/afsheenb/ctfield/limb"

// madd0 returns the high word of a*b + c.
func madd0(a, b, c limb.Word) limb.Word {
	hi, lo := limb.MulWW(a, b)
	_, carry := limb.AddWW(lo, c, 0)
	return hi + carry
}

// madd1 returns a*b + c as (hi, lo).
func madd1(a, b, c limb.Word) (hi, lo limb.Word) {
	hi, lo = limb.MulWW(a, b)
	var carry limb.Word
	lo, carry = limb.AddWW(lo, c, 0)
	hi += carry
	return hi, lo
}

// madd2 returns a*b + c + d as (hi, lo).
func madd2(a, b, c, d limb.Word) (hi, lo limb.Word) {
	hi, lo = limb.MulWW(a, b)
	var carry limb.Word
	c, carry = limb.AddWW(c, d, 0)
	hi += carry
	lo, carry = limb.AddWW(lo, c, 0)
	hi += carry
	return hi, lo
}

// Mul sets z = x*y / R mod m with R = 2^(WordBits*len(m)), for x, y < m.
// mu is -1/m[0] mod 2^W. noCarry selects the CIOS fast path and must be
// the precomputed m[n-1] < 2^(W-1) flag. z may alias x or y.
func Mul(z, x, y, m limb.Limbs, mu limb.Word, noCarry bool) {
	if noCarry {
		mulCIOS(z, x, y, m, mu)
	} else {
		mulFIPS(z, x, y, m, mu)
	}
}

// Square sets z = x*x / R mod m. It shares the multiplication kernel; a
// dedicated squaring only pays off with an unrolled kernel.
func Square(z, x, m limb.Limbs, mu limb.Word, noCarry bool) {
	Mul(z, x, x, m, mu, noCarry)
}

// Redc converts z out of the Montgomery domain: z = x / R mod m,
// as a Montgomery multiplication by 1.
func Redc(z, x, m limb.Limbs, mu limb.Word, noCarry bool) {
	var ob [limb.MaxWords]limb.Word
	one := limb.Limbs(ob[:len(m)])
	one[0] = 1
	Mul(z, x, one, m, mu, noCarry)
}

// Residue converts x into the Montgomery domain: z = x * R mod m,
// as a Montgomery multiplication by the precomputed R^2 mod m.
func Residue(z, x, r2, m limb.Limbs, mu limb.Word, noCarry bool) {
	Mul(z, x, r2, m, mu, noCarry)
}

// mulCIOS is coarsely integrated operand scanning without a top-limb
// carry register, valid when m[n-1] < 2^(W-1).
func mulCIOS(z, x, y, m limb.Limbs, mu limb.Word) {
	n := len(m)
	var tb [limb.MaxWords]limb.Word
	t := limb.Limbs(tb[:n])

	for i := 0; i < n; i++ {
		// t <- (t + x*y[i] + q*m) / 2^W
		a, t0 := madd1(x[0], y[i], t[0])
		q := t0 * mu
		c := madd0(q, m[0], t0)
		for j := 1; j < n; j++ {
			var u limb.Word
			a, u = madd2(x[j], y[i], t[j], a)
			c, t[j-1] = madd2(q, m[j], u, c)
		}
		t[n-1] = c + a
	}

	copy(z, t)
	z.CSub(m, z.Less(m).Not())
}

// mulFIPS is finely integrated product scanning with a three-word column
// accumulator and a spill word, valid for any odd modulus.
func mulFIPS(z, x, y, m limb.Limbs, mu limb.Word) {
	n := len(m)
	var tb [limb.MaxWords]limb.Word
	t := limb.Limbs(tb[:n])
	var c0, c1, c2 limb.Word // column accumulator, low to high

	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			c2, c1, c0 = accMul(c2, c1, c0, x[j], y[i-j])
			c2, c1, c0 = accMul(c2, c1, c0, t[j], m[i-j])
		}
		c2, c1, c0 = accMul(c2, c1, c0, x[i], y[0])
		t[i] = c0 * mu
		c2, c1, c0 = accMul(c2, c1, c0, t[i], m[0])
		// the low column word is now zero by choice of t[i]
		c0, c1, c2 = c1, c2, 0
	}
	for i := n; i < 2*n; i++ {
		for j := i - n + 1; j < n; j++ {
			c2, c1, c0 = accMul(c2, c1, c0, x[j], y[i-j])
			c2, c1, c0 = accMul(c2, c1, c0, t[j], m[i-j])
		}
		t[i-n] = c0
		c0, c1, c2 = c1, c2, 0
	}
	spill := c0

	copy(z, t)
	z.CSub(m, limb.IsZeroWord(spill).Not().Or(z.Less(m).Not()))
}

// accMul adds x*y into the c2:c1:c0 column accumulator.
func accMul(c2, c1, c0, x, y limb.Word) (limb.Word, limb.Word, limb.Word) {
	hi, lo := limb.MulWW(x, y)
	var c limb.Word
	c0, c = limb.AddWW(c0, lo, 0)
	c1, c = limb.AddWW(c1, hi, c)
	c2 += c
	return c2, c1, c0
}

// Redc2x reduces a double-width value t2 in [0, R*m) to z = t2 / R mod m.
// t2 has 2*len(m) words and is left untouched.
func Redc2x(z limb.Limbs, t2 limb.Limbs, m limb.Limbs, mu limb.Word) {
	n := len(m)
	var tb [2 * limb.MaxWords]limb.Word
	t := limb.Limbs(tb[:2*n])
	copy(t, t2)

	var carry limb.Word
	for i := 0; i < n; i++ {
		q := t[i] * mu
		var c limb.Word
		for j := 0; j < n; j++ {
			c, t[i+j] = madd2(q, m[j], t[i+j], c)
		}
		t[i+n], carry = limb.AddWW(t[i+n], c, carry)
	}

	copy(z, t[n:])
	z.CSub(m, limb.Choice(carry).Or(z.Less(m).Not()))
}

// NegInvModWord returns -1 / m0 mod 2^WordBits for odd m0, the Montgomery
// magic constant. Newton-Raphson doubles the valid bits each step: m0 is
// its own inverse mod 8, five steps reach 96 bits.
func NegInvModWord(m0 limb.Word) limb.Word {
	x := m0
	for i := 0; i < 5; i++ {
		x *= 2 - m0*x
	}
	return -x
}
