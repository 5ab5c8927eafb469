package limb

// Product-scanning multiplication and squaring. Each column of the result
// is accumulated into a three-word accumulator (t:u:v, high to low) so the
// loops have fixed trip counts and no data-dependent carries escape.

// accumulate adds the double-width product x*y into the t:u:v accumulator.
func accumulate(t, u, v, x, y Word) (Word, Word, Word) {
	hi, lo := MulWW(x, y)
	var c Word
	v, c = AddWW(v, lo, 0)
	u, c = AddWW(u, hi, c)
	t += c
	return t, u, v
}

// Prod sets r = a * b truncated to len(r) words (i.e. the product modulo
// 2^(WordBits*len(r))). r may be shorter or longer than len(a)+len(b);
// missing high columns read as zero. r must not alias a or b.
func Prod(r, a, b Limbs) {
	na, nb := len(a), len(b)
	var t, u, v Word
	for k := 0; k < len(r); k++ {
		iLo := k - nb + 1
		if iLo < 0 {
			iLo = 0
		}
		iHi := k
		if iHi > na-1 {
			iHi = na - 1
		}
		for i := iLo; i <= iHi; i++ {
			t, u, v = accumulate(t, u, v, a[i], b[k-i])
		}
		r[k] = v
		v, u, t = u, t, 0
	}
}

// ProdHighWords sets r to words [lowest, lowest+len(r)) of the product
// a * b. The low columns are still walked so the carries feeding the
// retained words are exact; only the stores are skipped. Used for
// Barrett-style quotient estimation. r must not alias a or b.
func ProdHighWords(r, a, b Limbs, lowest int) {
	na, nb := len(a), len(b)
	var t, u, v Word
	for k := 0; k < lowest+len(r); k++ {
		iLo := k - nb + 1
		if iLo < 0 {
			iLo = 0
		}
		iHi := k
		if iHi > na-1 {
			iHi = na - 1
		}
		for i := iLo; i <= iHi; i++ {
			t, u, v = accumulate(t, u, v, a[i], b[k-i])
		}
		if k >= lowest {
			r[k-lowest] = v
		}
		v, u, t = u, t, 0
	}
}

// Square sets r = a * a truncated to len(r) words. Cross products are
// multiplied once and accumulated twice, halving the word multiplies
// against Prod. r must not alias a.
func Square(r, a Limbs) {
	n := len(a)
	var t, u, v Word
	for k := 0; k < len(r); k++ {
		iLo := k - n + 1
		if iLo < 0 {
			iLo = 0
		}
		// pairs (i, k-i) with i < k-i
		for i := iLo; 2*i < k; i++ {
			hi, lo := MulWW(a[i], a[k-i])
			var c Word
			v, c = AddWW(v, lo, 0)
			u, c = AddWW(u, hi, c)
			t += c
			v, c = AddWW(v, lo, 0)
			u, c = AddWW(u, hi, c)
			t += c
		}
		if k%2 == 0 && k/2 < n {
			t, u, v = accumulate(t, u, v, a[k/2], a[k/2])
		}
		r[k] = v
		v, u, t = u, t, 0
	}
}
