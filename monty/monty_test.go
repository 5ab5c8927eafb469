package monty

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/afsheenb/ctfield/limb"
	"github.com/stretchr/testify/require"
)

type testModulus struct {
	name string
	hex  string
	bits uint
}

var testModuli = []testModulus{
	{"bn254-p", "30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47", 254},
	{"bn254-r", "30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001", 254},
	{"bls12381-p", "1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab", 381},
	{"bls12381-r", "73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001", 255},
	{"secp256k1-p", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f", 256},
	{"secp256k1-n", "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 256},
	{"babybear", "78000001", 31},
	{"atkin30", "3b9aca15", 30},
}

type montyCtx struct {
	m      *big.Int
	r      *big.Int // 2^(W*n)
	words  int
	ml     limb.Limbs
	mu     limb.Word
	nc     bool
	oneMon limb.Limbs // R mod m
}

func newCtx(t *testing.T, tm testModulus) *montyCtx {
	m, ok := new(big.Int).SetString(tm.hex, 16)
	require.True(t, ok)
	n := int((tm.bits + limb.WordBits - 1) / limb.WordBits)
	c := &montyCtx{
		m:     m,
		r:     new(big.Int).Lsh(big.NewInt(1), uint(n)*limb.WordBits),
		words: n,
		ml:    bigToLimbs(m, n),
	}
	c.mu = NegInvModWord(c.ml[0])
	c.nc = c.ml[n-1] < 1<<(limb.WordBits-1)
	c.oneMon = bigToLimbs(new(big.Int).Mod(c.r, m), n)
	return c
}

func bigToLimbs(v *big.Int, n int) limb.Limbs {
	a := make(limb.Limbs, n)
	t := new(big.Int).Set(v)
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), limb.WordBits), big.NewInt(1))
	for i := 0; i < n; i++ {
		a[i] = limb.Word(new(big.Int).And(t, mask).Uint64())
		t.Rsh(t, limb.WordBits)
	}
	return a
}

func limbsToBig(a limb.Limbs) *big.Int {
	v := new(big.Int)
	for i := len(a) - 1; i >= 0; i-- {
		v.Lsh(v, limb.WordBits)
		v.Or(v, new(big.Int).SetUint64(uint64(a[i])))
	}
	return v
}

// toMont/fromMont reference conversions via big.Int.
func (c *montyCtx) toMont(v *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(v, c.r), c.m)
}

func (c *montyCtx) fromMont(v *big.Int) *big.Int {
	rInv := new(big.Int).ModInverse(c.r, c.m)
	return new(big.Int).Mod(new(big.Int).Mul(v, rInv), c.m)
}

func TestNegInvModWord(t *testing.T) {
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		// mu * m[0] = -1 mod 2^W
		require.Equal(t, ^limb.Word(0), c.mu*c.ml[0], tm.name)
	}
	require.Equal(t, ^limb.Word(0), NegInvModWord(1), "mu of 1 is -1")
}

func TestMulAgainstBig(t *testing.T) {
	rng := rand.New(rand.NewSource(40))
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		for i := 0; i < 60; i++ {
			xv := new(big.Int).Rand(rng, c.m)
			yv := new(big.Int).Rand(rng, c.m)
			x := bigToLimbs(xv, c.words)
			y := bigToLimbs(yv, c.words)
			z := make(limb.Limbs, c.words)
			Mul(z, x, y, c.ml, c.mu, c.nc)

			// z = x*y/R mod m
			want := new(big.Int).Mul(xv, yv)
			want = c.fromMont(want)
			require.Equal(t, want.String(), limbsToBig(z).String(),
				"%s iteration %d", tm.name, i)
			require.True(t, z.Less(c.ml).IsTrue())
		}
	}
}

func TestMulBoundary(t *testing.T) {
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		mm1 := new(big.Int).Sub(c.m, big.NewInt(1))
		cases := []*big.Int{big.NewInt(0), big.NewInt(1), mm1}
		for _, xv := range cases {
			for _, yv := range cases {
				x := bigToLimbs(xv, c.words)
				y := bigToLimbs(yv, c.words)
				z := make(limb.Limbs, c.words)
				Mul(z, x, y, c.ml, c.mu, c.nc)
				want := c.fromMont(new(big.Int).Mul(xv, yv))
				require.Equal(t, want.String(), limbsToBig(z).String(), tm.name)
			}
		}
	}
}

func TestKernelsBitIdentical(t *testing.T) {
	// The CIOS no-carry and FIPS kernels must agree wherever both apply.
	rng := rand.New(rand.NewSource(41))
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		if !c.nc {
			continue
		}
		for i := 0; i < 40; i++ {
			x := bigToLimbs(new(big.Int).Rand(rng, c.m), c.words)
			y := bigToLimbs(new(big.Int).Rand(rng, c.m), c.words)
			zc := make(limb.Limbs, c.words)
			zf := make(limb.Limbs, c.words)
			mulCIOS(zc, x, y, c.ml, c.mu)
			mulFIPS(zf, x, y, c.ml, c.mu)
			require.True(t, zc.Equal(zf).IsTrue(), "%s: kernel divergence", tm.name)
		}
	}
}

func TestResidueRedcRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		r2 := bigToLimbs(new(big.Int).Mod(new(big.Int).Mul(c.r, c.r), c.m), c.words)
		for i := 0; i < 30; i++ {
			xv := new(big.Int).Rand(rng, c.m)
			x := bigToLimbs(xv, c.words)

			mont := make(limb.Limbs, c.words)
			Residue(mont, x, r2, c.ml, c.mu, c.nc)
			require.Equal(t, c.toMont(xv).String(), limbsToBig(mont).String(), tm.name)

			back := make(limb.Limbs, c.words)
			Redc(back, mont, c.ml, c.mu, c.nc)
			require.Equal(t, xv.String(), limbsToBig(back).String(), tm.name)
		}
	}
}

func TestSquareMatchesMul(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		for i := 0; i < 30; i++ {
			x := bigToLimbs(new(big.Int).Rand(rng, c.m), c.words)
			viaMul := make(limb.Limbs, c.words)
			viaSquare := make(limb.Limbs, c.words)
			Mul(viaMul, x, x, c.ml, c.mu, c.nc)
			Square(viaSquare, x, c.ml, c.mu, c.nc)
			require.True(t, viaMul.Equal(viaSquare).IsTrue(), tm.name)
		}
	}
}

func TestRedc2x(t *testing.T) {
	rng := rand.New(rand.NewSource(44))
	for _, tm := range testModuli {
		c := newCtx(t, tm)
		bound := new(big.Int).Mul(c.r, c.m) // inputs live in [0, R*m)
		for i := 0; i < 40; i++ {
			tv := new(big.Int).Rand(rng, bound)
			t2 := bigToLimbs(tv, 2*c.words)
			z := make(limb.Limbs, c.words)
			Redc2x(z, t2, c.ml, c.mu)
			want := c.fromMont(tv)
			require.Equal(t, want.String(), limbsToBig(z).String(), tm.name)
		}
		// top of the range
		top := bigToLimbs(new(big.Int).Sub(bound, big.NewInt(1)), 2*c.words)
		z := make(limb.Limbs, c.words)
		Redc2x(z, top, c.ml, c.mu)
		require.Equal(t, c.fromMont(new(big.Int).Sub(bound, big.NewInt(1))).String(),
			limbsToBig(z).String(), tm.name)
	}
}

func TestMulAliasing(t *testing.T) {
	rng := rand.New(rand.NewSource(45))
	c := newCtx(t, testModuli[0])
	xv := new(big.Int).Rand(rng, c.m)
	x := bigToLimbs(xv, c.words)
	want := make(limb.Limbs, c.words)
	Mul(want, x, x, c.ml, c.mu, c.nc)

	z := append(limb.Limbs(nil), x...)
	Mul(z, z, z, c.ml, c.mu, c.nc)
	require.True(t, want.Equal(z).IsTrue(), "output may alias inputs")
}
