package bigint

import "github.com/afsheenb/ctfield/limb"

// Multiplication by small literal integers, expanded into doubling/add
// chains. The factors are the multiples curve formulas need at fixed call
// sites, so each chain is spelled out rather than looped. Results truncate
// at the announced width; negative factors negate in two's complement.

// MulInt sets z = k * z for k in [-12, 12].
func (z *BigInt) MulInt(k int) *BigInt {
	neg := limb.Choice(0)
	if k < 0 {
		neg = 1
		k = -k
	}
	zl := z.Limbs()
	var tb [MaxWords]limb.Word
	t := limb.Limbs(tb[:len(zl)])

	switch k {
	case 0:
		zl.SetZero()
	case 1:
		// identity
	case 2:
		zl.Add(zl)
	case 3:
		t.Set(zl)
		zl.Add(zl)
		zl.Add(t)
	case 4:
		zl.Add(zl)
		zl.Add(zl)
	case 5:
		t.Set(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(t)
	case 6:
		// 6z = 3*(2z): the snapshot is taken after the first doubling.
		zl.Add(zl)
		t.Set(zl)
		zl.Add(zl)
		zl.Add(t)
	case 7:
		// 8z - z
		t.Set(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Sub(t)
	case 8:
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(zl)
	case 9:
		t.Set(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(t)
	case 10:
		zl.Add(zl)
		t.Set(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(t)
	case 11:
		// 11z = 2*(4z + z) + z
		t.Set(zl)
		zl.Add(zl)
		zl.Add(zl)
		zl.Add(t)
		zl.Add(zl)
		zl.Add(t)
	case 12:
		zl.Add(zl)
		zl.Add(zl)
		t.Set(zl)
		zl.Add(zl)
		zl.Add(t)
	default:
		panic("bigint: MulInt factor out of range")
	}
	z.CNeg(neg)
	return z
}
