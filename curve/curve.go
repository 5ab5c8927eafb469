// Package curve declares the supported curves and derives their field
// parameter blocks at init. A curve is an empty tag type implementing
// field.Curve; the heavy lifting (Montgomery constants, exponent strings,
// two-adicity decompositions) happens in field.NewParams, driven only by
// the modulus literals below.
package curve

import "github.com/afsheenb/ctfield/field"

var (
	// bn254Fp: p = 36u^4 + 36u^3 + 24u^2 + 6u + 1, u = 4965661367192848881.
	bn254Fp = field.NewParams(254,
		"0x30644e72e131a029b85045b68181585d97816a916871ca8d3c208c16d87cfd47")
	// bn254Fr: the group order r; r = 1 mod 2^28, so square roots go
	// through the Tonelli-Shanks ladder.
	bn254Fr = field.NewParams(254,
		"0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001")

	// bls12381Fp: the 381-bit base field characteristic.
	bls12381Fp = field.NewParams(381,
		"0x1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab")
	// bls12381Fr: the 255-bit subgroup order, two-adicity 32.
	bls12381Fr = field.NewParams(255,
		"0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001")

	// secp256k1Fp: p = 2^256 - 2^32 - 977. The top limb is all ones, so
	// multiplication takes the product-scanning kernel.
	secp256k1Fp = field.NewParams(256,
		"0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	// secp256k1Fr: the group order n; n = 1 mod 2^6.
	secp256k1Fr = field.NewParams(256,
		"0xfffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	// toy32Params: 2^31 - 2^27 + 1 (the "baby bear" NTT prime),
	// p = 1 mod 8 with two-adicity 27. Single-limb, deep
	// Tonelli-Shanks ladder.
	toy32Params = field.NewParams(31, "0x78000001")
	// toy32AParams: 1000000021, p = 5 mod 8: the Atkin square root.
	toy32AParams = field.NewParams(30, "0x3b9aca15")
)

// BN254 is the pairing curve of Ethereum's precompiles (alt_bn128).
type BN254 struct{}

func (BN254) BaseFieldParams() *field.Params   { return bn254Fp }
func (BN254) ScalarFieldParams() *field.Params { return bn254Fr }

// BLS12381 is the pairing curve of BLS signatures and Ethereum 2.
type BLS12381 struct{}

func (BLS12381) BaseFieldParams() *field.Params   { return bls12381Fp }
func (BLS12381) ScalarFieldParams() *field.Params { return bls12381Fr }

// Secp256k1 is Bitcoin's curve. Both of its moduli have a saturated top
// limb, exercising the carry-tolerant multiplication kernel.
type Secp256k1 struct{}

func (Secp256k1) BaseFieldParams() *field.Params   { return secp256k1Fp }
func (Secp256k1) ScalarFieldParams() *field.Params { return secp256k1Fr }

// Toy32 is a single-limb test prime with p = 1 mod 8. Both field
// accessors return the same block; the tag exists to drive the word-size
// edge cases through the full generic surface.
type Toy32 struct{}

func (Toy32) BaseFieldParams() *field.Params   { return toy32Params }
func (Toy32) ScalarFieldParams() *field.Params { return toy32Params }

// Toy32A is a single-limb test prime with p = 5 mod 8.
type Toy32A struct{}

func (Toy32A) BaseFieldParams() *field.Params   { return toy32AParams }
func (Toy32A) ScalarFieldParams() *field.Params { return toy32AParams }
