package monty

import "github.com/afsheenb/ctfield/limb"

// Fixed-window modular exponentiation in the Montgomery domain. The
// exponent arrives as a big-endian byte string; its length is public, its
// bits are not (for Pow). The caller provides the scratch table: a slice
// of 2^k + 1 buffers of len(m) words each, which fixes the window size k.

// WindowSize returns the window width a scratch table of the given length
// supports: 2^k table entries plus one lookup buffer.
func WindowSize(scratchLen int) uint {
	switch {
	case scratchLen >= 33:
		return 5
	case scratchLen >= 17:
		return 4
	case scratchLen >= 9:
		return 3
	case scratchLen >= 5:
		return 2
	default:
		return 1
	}
}

// windowAt reads w exponent bits starting at bit pos (most significant
// bit of e[0] is bit 0).
func windowAt(e []byte, pos, w uint) limb.Word {
	var v limb.Word
	for i := uint(0); i < w; i++ {
		b := pos + i
		v = v<<1 | limb.Word(e[b/8]>>(7-b%8)&1)
	}
	return v
}

// Pow raises a (Montgomery form) to the exponent, in place, in constant
// time: the squaring schedule depends only on the exponent length, and
// the window lookup walks the whole table with conditional copies instead
// of indexing by exponent bits. one is the Montgomery form of 1 (R mod m).
// scratch needs 2^k+1 buffers; at least 3.
func Pow(a limb.Limbs, exponent []byte, m limb.Limbs, mu limb.Word, one limb.Limbs, noCarry bool, scratch []limb.Limbs) {
	k := WindowSize(len(scratch))
	lookup := scratch[0]
	table := scratch[1 : 1+(1<<k)]

	table[0].Set(one)
	table[1].Set(a)
	for i := 2; i < len(table); i++ {
		Mul(table[i], table[i-1], a, m, mu, noCarry)
	}

	a.Set(one)
	total := uint(len(exponent)) * 8
	pos := uint(0)
	for pos < total {
		w := k
		if pos == 0 && total%k != 0 {
			w = total % k
		}
		for s := uint(0); s < w; s++ {
			Square(a, a, m, mu, noCarry)
		}
		bits := windowAt(exponent, pos, w)
		for i := 0; i < len(table); i++ {
			lookup.CCopy(table[i], limb.EqWord(limb.Word(i), bits))
		}
		// table[0] is one, so zero windows multiply by the identity and
		// the trace stays uniform.
		Mul(a, a, lookup, m, mu, noCarry)
		pos += w
	}
}

// PowUnsafeExponent is Pow minus the side-channel defenses on the
// exponent: direct table indexing and skipped zero-window multiplies.
// Only for public exponents (field characteristics, curve cofactors).
func PowUnsafeExponent(a limb.Limbs, exponent []byte, m limb.Limbs, mu limb.Word, one limb.Limbs, noCarry bool, scratch []limb.Limbs) {
	k := WindowSize(len(scratch))
	table := scratch[1 : 1+(1<<k)]

	table[0].Set(one)
	table[1].Set(a)
	for i := 2; i < len(table); i++ {
		Mul(table[i], table[i-1], a, m, mu, noCarry)
	}

	a.Set(one)
	total := uint(len(exponent)) * 8
	pos := uint(0)
	started := false
	for pos < total {
		w := k
		if pos == 0 && total%k != 0 {
			w = total % k
		}
		bits := windowAt(exponent, pos, w)
		if started {
			for s := uint(0); s < w; s++ {
				Square(a, a, m, mu, noCarry)
			}
		}
		if bits != 0 {
			if started {
				Mul(a, a, table[bits], m, mu, noCarry)
			} else {
				a.Set(table[bits])
				started = true
			}
		}
		pos += w
	}
}
