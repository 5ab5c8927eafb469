package field_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/afsheenb/ctfield/bigint"
	"github.com/afsheenb/ctfield/curve"
	"github.com/afsheenb/ctfield/field"
	"github.com/stretchr/testify/require"
)

// The algebraic law suite runs over every supported curve's base field;
// the scalar fields share the same kernel and get a focused pass in
// fr_test.go.

func TestFpLaws(t *testing.T) {
	t.Run("BN254", testFpSuite[curve.BN254])
	t.Run("BLS12381", testFpSuite[curve.BLS12381])
	t.Run("Secp256k1", testFpSuite[curve.Secp256k1])
	t.Run("Toy32", testFpSuite[curve.Toy32])
	t.Run("Toy32A", testFpSuite[curve.Toy32A])
}

func fpModulus[C field.Curve]() *big.Int {
	var c C
	return c.BaseFieldParams().Modulus.Big()
}

func randFp[C field.Curve](rng *rand.Rand) *field.Fp[C] {
	var e field.Fp[C]
	e.SetBig(new(big.Int).Rand(rng, fpModulus[C]()))
	return &e
}

func testFpSuite[C field.Curve](t *testing.T) {
	m := fpModulus[C]()
	rng := rand.New(rand.NewSource(70))

	t.Run("round-trip", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			v := new(big.Int).Rand(rng, m)
			var a field.Fp[C]
			a.SetBig(v)
			require.Equal(t, v.String(), a.Big().String())

			var nat bigint.BigInt
			a.ToBigInt(&nat)
			var b field.Fp[C]
			b.FromBigInt(&nat)
			require.True(t, a.Equal(&b).IsTrue(), "fromBig(toBig(a)) == a")
		}
	})

	t.Run("additive-group", func(t *testing.T) {
		for i := 0; i < 30; i++ {
			a := randFp[C](rng)
			b := randFp[C](rng)
			c := randFp[C](rng)

			var na, zero field.Fp[C]
			na.Neg(a)
			zero.Add(a, &na)
			require.True(t, zero.IsZero().IsTrue(), "a + (-a) == 0")

			var ab, ba field.Fp[C]
			ab.Add(a, b)
			ba.Add(b, a)
			require.True(t, ab.Equal(&ba).IsTrue(), "add commutes")

			var l, r field.Fp[C]
			l.Add(a, b)
			l.Add(&l, c)
			r.Add(b, c)
			r.Add(a, &r)
			require.True(t, l.Equal(&r).IsTrue(), "add associates")

			var nb, viaNeg, viaSub field.Fp[C]
			nb.Neg(b)
			viaNeg.Add(a, &nb)
			viaSub.Sub(a, b)
			require.True(t, viaSub.Equal(&viaNeg).IsTrue(), "sub == add neg")

			var d2, aa field.Fp[C]
			d2.Double(a)
			aa.Add(a, a)
			require.True(t, d2.Equal(&aa).IsTrue(), "double == a+a")

			var h field.Fp[C]
			h.Halve(&d2)
			require.True(t, h.Equal(a).IsTrue(), "halve(double(a)) == a")
		}
	})

	t.Run("multiplicative", func(t *testing.T) {
		var one, zero field.Fp[C]
		one.SetOne()
		zero.SetZero()
		require.True(t, one.IsOne().IsTrue())
		for i := 0; i < 30; i++ {
			a := randFp[C](rng)
			b := randFp[C](rng)
			c := randFp[C](rng)

			var t1 field.Fp[C]
			t1.Mul(a, &one)
			require.True(t, t1.Equal(a).IsTrue(), "a*1 == a")
			t1.Mul(a, &zero)
			require.True(t, t1.IsZero().IsTrue(), "a*0 == 0")

			var ab, ba field.Fp[C]
			ab.Mul(a, b)
			ba.Mul(b, a)
			require.True(t, ab.Equal(&ba).IsTrue(), "mul commutes")

			var l, r field.Fp[C]
			l.Mul(a, b)
			l.Mul(&l, c)
			r.Mul(b, c)
			r.Mul(a, &r)
			require.True(t, l.Equal(&r).IsTrue(), "mul associates")

			// a*(b+c) == a*b + a*c
			var bc, lhs, rhs field.Fp[C]
			bc.Add(b, c)
			lhs.Mul(a, &bc)
			rhs.Mul(a, c)
			rhs.Add(&ab, &rhs)
			require.True(t, lhs.Equal(&rhs).IsTrue(), "mul distributes")

			var sq, mm field.Fp[C]
			sq.Square(a)
			mm.Mul(a, a)
			require.True(t, sq.Equal(&mm).IsTrue(), "square == a*a")

			// oracle check
			av, bv := a.Big(), b.Big()
			want := new(big.Int).Mod(new(big.Int).Mul(av, bv), m)
			require.Equal(t, want.String(), ab.Big().String())
		}
	})

	t.Run("inverse", func(t *testing.T) {
		var one field.Fp[C]
		one.SetOne()
		for i := 0; i < 20; i++ {
			a := randFp[C](rng)
			if a.IsZero().IsTrue() {
				continue
			}
			var inv, prod, back field.Fp[C]
			inv.Inverse(a)
			prod.Mul(a, &inv)
			require.True(t, prod.Equal(&one).IsTrue(), "a * inv(a) == 1")
			back.Inverse(&inv)
			require.True(t, back.Equal(a).IsTrue(), "inv(inv(a)) == a")
		}
		var zero, invZero field.Fp[C]
		zero.SetZero()
		invZero.Inverse(&zero)
		require.True(t, invZero.IsZero().IsTrue(), "inv(0) == 0")
	})

	t.Run("fermat", func(t *testing.T) {
		var c C
		p := c.BaseFieldParams()
		exp := bigint.New(p.Bits)
		exp.SetBig(new(big.Int).Sub(m, big.NewInt(1)))
		var one field.Fp[C]
		one.SetOne()
		for i := 0; i < 5; i++ {
			a := randFp[C](rng)
			if a.IsZero().IsTrue() {
				continue
			}
			var pw field.Fp[C]
			pw.Pow(a, &exp)
			require.True(t, pw.Equal(&one).IsTrue(), "a^(m-1) == 1")
		}
	})

	t.Run("boundary", func(t *testing.T) {
		var zero, one, minus1 field.Fp[C]
		zero.SetZero()
		one.SetOne()
		minus1.Neg(&one)
		require.True(t, minus1.IsMinusOne().IsTrue())
		require.Equal(t, new(big.Int).Sub(m, big.NewInt(1)).String(), minus1.Big().String())

		var s field.Fp[C]
		s.Add(&minus1, &one)
		require.True(t, s.IsZero().IsTrue(), "(m-1) + 1 == 0")
		s.Sub(&zero, &one)
		require.True(t, s.IsMinusOne().IsTrue(), "0 - 1 == m-1")
		s.Mul(&minus1, &minus1)
		require.True(t, s.IsOne().IsTrue(), "(-1)^2 == 1")
		s.Neg(&zero)
		require.True(t, s.IsZero().IsTrue(), "-0 == 0")
	})

	t.Run("mulint", func(t *testing.T) {
		for k := -12; k <= 12; k++ {
			a := randFp[C](rng)
			var got field.Fp[C]
			got.MulInt(a, k)
			want := new(big.Int).Mul(a.Big(), big.NewInt(int64(k)))
			want.Mod(want, m)
			require.Equal(t, want.String(), got.Big().String(), "k=%d", k)
		}
		// aliasing: z == x
		a := randFp[C](rng)
		want := new(big.Int).Mod(new(big.Int).Mul(a.Big(), big.NewInt(6)), m)
		a.MulInt(a, 6)
		require.Equal(t, want.String(), a.Big().String(), "in-place 6*a")
	})

	t.Run("legendre", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			a := randFp[C](rng)
			want := big.Jacobi(a.Big(), m)
			require.Equal(t, want, a.Legendre())
			require.Equal(t, want >= 0, a.IsSquare().IsTrue())
		}
		var zero field.Fp[C]
		zero.SetZero()
		require.Equal(t, 0, zero.Legendre())
		require.True(t, zero.IsSquare().IsTrue(), "0 is a square")
	})

	t.Run("bytes", func(t *testing.T) {
		var c C
		p := c.BaseFieldParams()
		size := int((p.Bits + 7) / 8)
		for i := 0; i < 10; i++ {
			a := randFp[C](rng)
			buf := make([]byte, size)
			be := a.Bytes(buf)
			require.Len(t, be, size)
			var b field.Fp[C]
			b.SetBytes(be)
			require.True(t, a.Equal(&b).IsTrue(), "bytes round-trip")
		}
	})

	t.Run("conditional", func(t *testing.T) {
		a := randFp[C](rng)
		b := randFp[C](rng)
		a0 := new(field.Fp[C]).Set(a)
		b0 := new(field.Fp[C]).Set(b)

		a.CCopy(b, 0)
		require.True(t, a.Equal(a0).IsTrue())
		a.CCopy(b, 1)
		require.True(t, a.Equal(b0).IsTrue())

		a.Set(a0)
		a.CSwap(b, 1)
		require.True(t, a.Equal(b0).IsTrue())
		require.True(t, b.Equal(a0).IsTrue())
	})

	t.Run("setrandom", func(t *testing.T) {
		var a field.Fp[C]
		_, err := a.SetRandom()
		require.NoError(t, err)
		require.True(t, a.Big().Cmp(m) < 0)
	})
}
