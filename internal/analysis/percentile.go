package analysis

import "math"

// Percentile вычисляет перцентиль по отсортированной по возрастанию выборке
// линейной интерполяцией (R-6, как в Excel): rank = (p/100)·(n+1), с
// ограничением на края выборки. Возвращает nil для пустой выборки.
func Percentile(sorted []float64, p float64) *float64 {
	n := len(sorted)
	if n == 0 {
		return nil
	}

	rank := p / 100 * float64(n+1)

	if rank <= 1 {
		v := sorted[0]
		return &v
	}
	if rank >= float64(n) {
		v := sorted[n-1]
		return &v
	}

	lower := int(math.Floor(rank))
	frac := rank - float64(lower)

	v := sorted[lower-1] + frac*(sorted[lower]-sorted[lower-1])
	return &v
}
