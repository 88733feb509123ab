package indicator

import "math"

const (
	SMAPeriod = 20
	RSIPeriod = 14
)

// Series holds indicator values aligned index-for-index with the closing
// prices they were computed from. Warm-up positions hold NaN.
type Series struct {
	SMA []float64
	RSI []float64
}

// Compute calculates the default SMA(20) and RSI(14) series for one symbol.
func Compute(closes []float64) Series {
	return Series{
		SMA: SMA(closes, SMAPeriod),
		RSI: RSI(closes, RSIPeriod),
	}
}

// SMA computes the simple moving average series. The first period-1 entries
// are NaN because not enough history exists yet.
func SMA(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= period {
			sum -= closes[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RSI computes the Wilder-smoothed relative strength index series. The first
// period-1 entries are NaN; the seed averages at index period-1 are taken
// over the price changes available by that point, divided by period, and
// every later index folds in the next change with smoothing factor 1/period.
// An average loss of exactly zero yields 100.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 1 || len(closes) < period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i < period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period-1] = rsiValue(avgGain, avgLoss)

	for i := period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}

	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
