package analytics

// BMI computes body-mass index from height in centimeters and weight in
// kilograms, rounded to two decimal places. Inputs are validated by the
// handler; height must be non-zero here.
func BMI(heightCm, weightKg float64) float64 {
	meters := heightCm / 100
	return round2(weightKg / (meters * meters))
}

// BMICategory maps a BMI value to its qualitative label.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 24.9:
		return "Normal weight"
	case bmi < 29.9:
		return "Overweight"
	default:
		return "Obese"
	}
}
