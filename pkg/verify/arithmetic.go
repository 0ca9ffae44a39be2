package verify

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// secp256k1 domain parameters: y² = x³ + 7 over the prime field F_p, with
// generator (genX, genY) spanning a group of prime order n.
var (
	fieldP = mustParseHexInt("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	orderN = mustParseHexInt("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	genX   = mustParseHexInt("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	genY   = mustParseHexInt("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")
	curveB = big.NewInt(7)

	fieldPMinus2 = new(big.Int).Sub(fieldP, big.NewInt(2))
	orderNMinus2 = new(big.Int).Sub(orderN, big.NewInt(2))

	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

const scalarBits = 256

// ArithmeticEngine re-derives the verification answer from exact modular
// big-integer arithmetic with a constant operation sequence. Points carry an
// explicit infinity selector, the group law combines all of its cases by
// arithmetic selection and scalar multiplication always walks all 256 bits,
// so the evaluation shape does not depend on input values. Its outcomes must
// match the native context bit for bit.
type ArithmeticEngine struct{}

// NewArithmeticEngine creates the fixed-shape evaluation context.
func NewArithmeticEngine() *ArithmeticEngine {
	return &ArithmeticEngine{}
}

// Name implements the Engine interface.
func (*ArithmeticEngine) Name() string { return "arithmetic" }

// Verify implements the Engine interface.
func (*ArithmeticEngine) Verify(in Inputs) Outcome {
	x := new(big.Int).SetBytes(in.PubKeyX[:])
	y := new(big.Int).SetBytes(in.PubKeyY[:])
	if x.Cmp(fieldP) >= 0 || y.Cmp(fieldP) >= 0 || !onCurve(x, y) {
		return invalidOutcome(ReasonPointNotOnCurve)
	}

	r := new(big.Int).SetBytes(in.Signature[:32])
	s := new(big.Int).SetBytes(in.Signature[32:])
	if !scalarInRange(r) || !scalarInRange(s) {
		return invalidOutcome(ReasonMalformedInput)
	}

	z := new(big.Int).SetBytes(in.Digest[:])
	z.Mod(z, orderN)

	if !verifyEquation(r, s, z, newPoint(x, y)) {
		return invalidOutcome(ReasonRecoveryFailed)
	}

	derived := deriveAddress(in.PubKeyX, in.PubKeyY)
	if derived != in.TargetAddress {
		return invalidOutcome(ReasonAddressMismatch)
	}
	return validOutcome(derived)
}

// verifyEquation checks r == (u1*G + u2*Q).x mod n for u1 = z*s⁻¹ and
// u2 = r*s⁻¹, rejecting a recovered point at infinity.
func verifyEquation(r, s, z *big.Int, q affinePoint) bool {
	w := new(big.Int).Exp(s, orderNMinus2, orderN)
	u1 := new(big.Int).Mul(z, w)
	u1.Mod(u1, orderN)
	u2 := new(big.Int).Mul(r, w)
	u2.Mod(u2, orderN)

	rp := addPoints(mulPoint(u1, newPoint(genX, genY)), mulPoint(u2, q))
	if rp.inf.Sign() != 0 {
		return false
	}
	rx := new(big.Int).Mod(rp.x, orderN)
	return rx.Cmp(r) == 0
}

// scalarInRange reports 0 < v < n.
func scalarInRange(v *big.Int) bool {
	return v.Sign() > 0 && v.Cmp(orderN) < 0
}

// onCurve reports whether (x, y) satisfies y² = x³ + 7 mod p. The origin
// sentinel used for the identity element is not on the curve.
func onCurve(x, y *big.Int) bool {
	lhs := feMul(y, y)
	rhs := feAdd(feMul(x, feMul(x, x)), curveB)
	return lhs.Cmp(rhs) == 0
}

// deriveAddress applies the hash-and-truncate rule: the low 20 bytes of
// Keccak-256 over the concatenated coordinates.
func deriveAddress(x, y [32]byte) common.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(x[:])
	h.Write(y[:])
	return common.BytesToAddress(h.Sum(nil)[12:])
}

// affinePoint is a curve point in affine coordinates with an explicit
// infinity selector, so the group law never branches on point values.
// Coordinates are always reduced residues mod p; the identity element keeps
// (0, 0) as a sentinel.
type affinePoint struct {
	x, y *big.Int
	inf  *big.Int // 1 for the identity element, else 0
}

func newPoint(x, y *big.Int) affinePoint {
	return affinePoint{x: new(big.Int).Set(x), y: new(big.Int).Set(y), inf: new(big.Int)}
}

func newInfinity() affinePoint {
	return affinePoint{x: new(big.Int), y: new(big.Int), inf: big.NewInt(1)}
}

// addPoints implements the complete affine group law. Every case (identity
// operands, doubling, inverse operands, generic chord) is computed on every
// call and the result picked by selection.
func addPoints(p1, p2 affinePoint) affinePoint {
	sameX := selIsZero(feSub(p2.x, p1.x))
	oppY := selIsZero(feAdd(p1.y, p2.y))

	// Chord slope (x1 != x2). The denominator is muxed to 1 when zero so the
	// inversion is always defined; the muxed result is discarded in exactly
	// those cases.
	chordDen := feSub(p2.x, p1.x)
	chordDen = selMux(selIsZero(chordDen), bigOne, chordDen)
	chordLam := feMul(feSub(p2.y, p1.y), feInv(chordDen))

	// Tangent slope (p1 == p2). Same denominator treatment.
	dblDen := feAdd(p1.y, p1.y)
	dblDen = selMux(selIsZero(dblDen), bigOne, dblDen)
	dblLam := feMul(feMul(big.NewInt(3), feMul(p1.x, p1.x)), feInv(dblDen))

	useDbl := selAnd(sameX, selNot(oppY))
	lam := selMux(useDbl, dblLam, chordLam)

	x3 := feSub(feSub(feMul(lam, lam), p1.x), p2.x)
	y3 := feSub(feMul(lam, feSub(p1.x, x3)), p1.y)

	// Equal x with opposite y sums to the identity.
	sumInf := selAnd(sameX, oppY)
	sum := affinePoint{
		x:   selMux(sumInf, bigZero, x3),
		y:   selMux(sumInf, bigZero, y3),
		inf: sumInf,
	}

	// Identity operands pass the other point through unchanged.
	out := muxPoint(p2.inf, p1, sum)
	return muxPoint(p1.inf, p2, out)
}

// mulPoint computes k*p with a fixed double-and-add ladder: one addition,
// one doubling and one selection per scalar bit, for all 256 bits.
func mulPoint(k *big.Int, p affinePoint) affinePoint {
	acc := newInfinity()
	step := p
	for i := 0; i < scalarBits; i++ {
		bit := big.NewInt(int64(k.Bit(i)))
		acc = muxPoint(bit, addPoints(acc, step), acc)
		step = addPoints(step, step)
	}
	return acc
}

func muxPoint(sel *big.Int, a, b affinePoint) affinePoint {
	return affinePoint{
		x:   selMux(sel, a.x, b.x),
		y:   selMux(sel, a.y, b.y),
		inf: selMux(sel, a.inf, b.inf),
	}
}

// selMux returns a when sel is 1 and b when sel is 0: b + sel*(a-b) mod p.
// Selection is arithmetic, not control flow, so both arms are always live.
func selMux(sel, a, b *big.Int) *big.Int {
	d := new(big.Int).Sub(a, b)
	d.Mul(d, sel)
	d.Add(d, b)
	return d.Mod(d, fieldP)
}

func selIsZero(v *big.Int) *big.Int {
	if v.Sign() == 0 {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

func selAnd(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

func selNot(a *big.Int) *big.Int { return new(big.Int).Sub(bigOne, a) }

func feAdd(a, b *big.Int) *big.Int {
	s := new(big.Int).Add(a, b)
	return s.Mod(s, fieldP)
}

func feSub(a, b *big.Int) *big.Int {
	d := new(big.Int).Sub(a, b)
	return d.Mod(d, fieldP)
}

func feMul(a, b *big.Int) *big.Int {
	m := new(big.Int).Mul(a, b)
	return m.Mod(m, fieldP)
}

// feInv raises to p-2. Callers mux zero denominators to 1 beforehand, so the
// inversion is total.
func feInv(a *big.Int) *big.Int {
	return new(big.Int).Exp(a, fieldPMinus2, fieldP)
}

func mustParseHexInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("verify: invalid curve constant")
	}
	return v
}
