package limb

// Modular reduction by shift-one-word-and-add, with a single-word quotient
// estimate per step. Values stay secret; lengths and the modulus bit size
// are public.

// Reduce sets r = a mod m, for any input length. m's top bit must sit at
// bit (mBits-1), i.e. the modulus uses all its declared bits. r must have
// exactly len(m) words and must not alias a.
func Reduce(r, a, m Limbs, mBits uint) {
	r.SetZero()
	for i := len(a) - 1; i >= 0; i-- {
		shlAddMod(r, a[i], m, mBits)
	}
}

// shlAddMod sets a = (a<<WordBits + c) mod m, assuming a < m on entry.
func shlAddMod(a Limbs, c Word, m Limbs, mBits uint) {
	n := len(m)
	if mBits <= WordBits {
		// One-word modulus: hardware 2-by-1 division.
		_, a[0] = Div2By1(a[0], c, m[0])
		return
	}

	// The value to reduce is A = a*2^W + c, n+1 words with A[n] = a[n-1],
	// A[i] = a[i-1] for 0 < i <= n, A[0] = c. Since a < m the one-word
	// quotient q = A/m fits a word. Estimate it from the top two words of
	// A and the top word of m, both normalized so m's top bit is at the
	// word boundary; the estimate is in [q, q+2] (Knuth 4.3.1).
	sb := uint(n)*WordBits - mBits // spare bits in m's top limb
	mTop := m[n-1]<<sb | m[n-2]>>(WordBits-sb)

	an1 := a[n-1] // A[n]
	an2 := a[n-2] // A[n-1]
	an3 := c      // A[n-2], == c when n == 2
	if n >= 3 {
		an3 = a[n-3]
	}
	aHi := an1<<sb | an2>>(WordBits-sb)
	aLo := an2<<sb | an3>>(WordBits-sb)

	// Saturate the estimate instead of branching when aHi >= mTop.
	sat := LtWord(aHi, mTop).Not()
	qHat, _ := Div2By1(aHi&^sat.Mask(), aLo, mTop)
	qHat |= sat.Mask()

	// qm = qHat * m over n+1 words.
	var qmBuf [2*MaxWords + 1]Word
	qm := qmBuf[: n+1 : n+1]
	var carry Word
	for i := 0; i < n; i++ {
		hi, lo := MulWW(qHat, m[i])
		lo, cc := AddWW(lo, carry, 0)
		qm[i] = lo
		carry = hi + cc
	}
	qm[n] = carry

	// R = A - qm, low-to-high, writing the low n words back into a and
	// keeping the top word aside.
	var borrow Word
	prev := c // A[j], starting at j == 0
	for j := 0; j < n; j++ {
		rj, bb := SubWW(prev, qm[j], borrow)
		borrow = bb
		prev = a[j]
		a[j] = rj
	}
	top, borrow := SubWW(prev, qm[n], borrow)

	// Add m back while the remainder is negative; at most twice.
	top += condAddCarry(a, m, Choice(borrow))
	stillNeg := IsZeroWord(top).Not()
	condAddCarry(a, m, stillNeg)
}

// condAddCarry adds m into a when ctl is 1 (by masking the addend, so the
// carry chain is exact and the traffic identical) and returns the carry.
func condAddCarry(a, m Limbs, ctl Choice) Word {
	mask := ctl.Mask()
	var carry Word
	for i := range a {
		a[i], carry = AddWW(a[i], m[i]&mask, carry)
	}
	return carry
}
