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

// Scalar fields run the same kernel as the base fields; this pass pins
// the Fr-specific wiring and the deep Tonelli-Shanks ladders of the
// pairing-curve group orders (BN254: 2-adicity 28, BLS12-381: 32,
// secp256k1: 6).

func TestFrFields(t *testing.T) {
	t.Run("BN254", testFrSuite[curve.BN254])
	t.Run("BLS12381", testFrSuite[curve.BLS12381])
	t.Run("Secp256k1", testFrSuite[curve.Secp256k1])
}

func frModulus[C field.Curve]() *big.Int {
	var c C
	return c.ScalarFieldParams().Modulus.Big()
}

func randFr[C field.Curve](rng *rand.Rand) *field.Fr[C] {
	var e field.Fr[C]
	e.SetBig(new(big.Int).Rand(rng, frModulus[C]()))
	return &e
}

func testFrSuite[C field.Curve](t *testing.T) {
	m := frModulus[C]()
	rng := rand.New(rand.NewSource(90))

	t.Run("arithmetic", func(t *testing.T) {
		var one field.Fr[C]
		one.SetOne()
		for i := 0; i < 30; i++ {
			a := randFr[C](rng)
			b := randFr[C](rng)

			var s field.Fr[C]
			s.Add(a, b)
			want := new(big.Int).Mod(new(big.Int).Add(a.Big(), b.Big()), m)
			require.Equal(t, want.String(), s.Big().String())

			var p field.Fr[C]
			p.Mul(a, b)
			want = new(big.Int).Mod(new(big.Int).Mul(a.Big(), b.Big()), m)
			require.Equal(t, want.String(), p.Big().String())

			if a.IsZero().IsTrue() {
				continue
			}
			var inv, prod field.Fr[C]
			inv.Inverse(a)
			prod.Mul(a, &inv)
			require.True(t, prod.Equal(&one).IsTrue(), "a * inv(a) == 1")
		}
	})

	t.Run("fermat", func(t *testing.T) {
		var c C
		p := c.ScalarFieldParams()
		exp := bigint.New(p.Bits)
		exp.SetBig(new(big.Int).Sub(m, big.NewInt(1)))
		var one field.Fr[C]
		one.SetOne()
		a := randFr[C](rng)
		if !a.IsZero().IsTrue() {
			var pw field.Fr[C]
			pw.Pow(a, &exp)
			require.True(t, pw.Equal(&one).IsTrue())
		}
	})

	t.Run("tonelli-shanks", func(t *testing.T) {
		for i := 0; i < 15; i++ {
			s := randFr[C](rng)
			var a field.Fr[C]
			a.Square(s)
			var root field.Fr[C]
			require.True(t, root.SqrtIfSquare(&a).IsTrue())
			var chk field.Fr[C]
			chk.Square(&root)
			require.True(t, chk.Equal(&a).IsTrue(), "sqrt over the scalar field")
		}
		found := false
		for i := 0; i < 100 && !found; i++ {
			a := randFr[C](rng)
			if big.Jacobi(a.Big(), m) == -1 {
				found = true
				require.False(t, a.IsSquare().IsTrue())
				var root field.Fr[C]
				require.False(t, root.SqrtIfSquare(a).IsTrue())
			}
		}
		require.True(t, found)
	})

	t.Run("type-distinct-from-fp", func(t *testing.T) {
		// Fr and Fp of the same curve are different types with different
		// moduli; the arithmetic must use the scalar one.
		var a field.Fr[C]
		a.SetUint64(1)
		var minus1 field.Fr[C]
		minus1.Neg(&a)
		require.Equal(t, new(big.Int).Sub(m, big.NewInt(1)).String(), minus1.Big().String())
	})
}
