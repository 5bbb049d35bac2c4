package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Percentage devolve current/total em porcentagem inteira, arredondada ao mais próximo
func Percentage(current, total int) int {
	if total <= 0 {
		return 0
	}

	return int(math.Round(float64(current) / float64(total) * 100))
}
