package topics

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const nmfEpsilon = 1e-9

// nmfFactorize decomposes the term-document matrix v (terms x docs) into
// w (terms x k) and h (k x docs) with the classic multiplicative update
// rules. The seeded RNG makes the factorization reproducible; the nlp
// package ships no NMF, so this runs directly on gonum matrices.
func nmfFactorize(v *mat.Dense, k, iterations int, seed int64) (*mat.Dense, *mat.Dense) {
	nTerms, nDocs := v.Dims()
	rnd := rand.New(rand.NewSource(uint64(seed)))

	w := randomDense(nTerms, k, rnd)
	h := randomDense(k, nDocs, rnd)

	var wtv, wtw, wtwh mat.Dense
	var vht, hht, whht mat.Dense
	for i := 0; i < iterations; i++ {
		// H <- H * (W'V) / (W'WH)
		wtv.Mul(w.T(), v)
		wtw.Mul(w.T(), w)
		wtwh.Mul(&wtw, h)
		scaleElementwise(h, &wtv, &wtwh)

		// W <- W * (VH') / (WHH')
		vht.Mul(v, h.T())
		hht.Mul(h, h.T())
		whht.Mul(w, &hht)
		scaleElementwise(w, &vht, &whht)
	}

	return w, h
}

func randomDense(rows, cols int, rnd *rand.Rand) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		// strictly positive init keeps the updates well defined
		data[i] = rnd.Float64() + nmfEpsilon
	}
	return mat.NewDense(rows, cols, data)
}

// scaleElementwise applies target *= num / (den + eps) per element.
func scaleElementwise(target, num, den *mat.Dense) {
	rows, cols := target.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			target.Set(r, c, target.At(r, c)*num.At(r, c)/(den.At(r, c)+nmfEpsilon))
		}
	}
}
