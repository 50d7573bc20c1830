package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Percentage calcula part*100/total arredondado, retornando 0 quando total é 0
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return RoundWithTwoDecimalPlace(float64(part) * 100 / float64(total))
}

// SafeDivide retorna 0 quando o divisor é 0
func SafeDivide(numerator float64, denominator int) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / float64(denominator)
}
