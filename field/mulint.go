package field

import "github.com/afsheenb/ctfield/bigint"

// feMulInt multiplies by a literal factor in [-12, 12] with the same
// doubling/add chains the width-tagged integers use, but with modular
// doubles and adds. The input is snapshotted up front so z may alias x.
func feMulInt(p *Params, z, x *bigint.BigInt, k int) {
	neg := k < 0
	if neg {
		k = -k
	}
	t := *x
	switch k {
	case 0:
		feSetZero(p, z)
	case 1:
		feSet(p, z, x)
	case 2:
		feDouble(p, z, x)
	case 3:
		feDouble(p, z, x)
		feAdd(p, z, z, &t)
	case 4:
		feDouble(p, z, x)
		feDouble(p, z, z)
	case 5:
		feDouble(p, z, x)
		feDouble(p, z, z)
		feAdd(p, z, z, &t)
	case 6:
		// 3*(2x): the snapshot is of the doubled value.
		feDouble(p, z, x)
		t2 := *z
		feDouble(p, z, z)
		feAdd(p, z, z, &t2)
	case 7:
		// 8x - x
		feDouble(p, z, x)
		feDouble(p, z, z)
		feDouble(p, z, z)
		feSub(p, z, z, &t)
	case 8:
		feDouble(p, z, x)
		feDouble(p, z, z)
		feDouble(p, z, z)
	case 9:
		feDouble(p, z, x)
		feDouble(p, z, z)
		feDouble(p, z, z)
		feAdd(p, z, z, &t)
	case 10:
		feDouble(p, z, x)
		t2 := *z
		feDouble(p, z, z)
		feDouble(p, z, z)
		feAdd(p, z, z, &t2)
	case 11:
		// 2*(4x + x) + x
		feDouble(p, z, x)
		feDouble(p, z, z)
		feAdd(p, z, z, &t)
		feDouble(p, z, z)
		feAdd(p, z, z, &t)
	case 12:
		feDouble(p, z, x)
		feDouble(p, z, z)
		t2 := *z
		feDouble(p, z, z)
		feAdd(p, z, z, &t2)
	default:
		panic("field: MulInt factor out of range")
	}
	if neg {
		feNeg(p, z, z)
	}
}
