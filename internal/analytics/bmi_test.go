package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	assert.Equal(t, 24.22, BMI(170, 70))
	assert.Equal(t, 40.0, BMI(150, 90))
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name string
		bmi  float64
		want string
	}{
		{"underweight", 17.0, "Underweight"},
		{"normal from 170cm 70kg", BMI(170, 70), "Normal weight"},
		{"overweight", 27.5, "Overweight"},
		{"obese from 150cm 90kg", BMI(150, 90), "Obese"},
		{"boundary 18.5 is normal", 18.5, "Normal weight"},
		{"boundary 24.9 is overweight", 24.9, "Overweight"},
		{"boundary 29.9 is obese", 29.9, "Obese"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BMICategory(tt.bmi))
		})
	}
}
