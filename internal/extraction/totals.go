package extraction

import "controle-financeiro/internal/normalize"

// TotalDetector picks the purchase total out of free receipt text.
type TotalDetector interface {
	DetectTotal(text string) (float64, bool)
}

// LastAmountDetector takes the last currency-shaped token in the text, since
// totals are usually printed last.
type LastAmountDetector struct{}

func (LastAmountDetector) DetectTotal(text string) (float64, bool) {
	return normalize.LastAmount(text)
}
