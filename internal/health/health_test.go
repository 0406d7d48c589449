package health

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		want     float64
		category BMICategory
	}{
		{"normal", 70, 175, 22.9, Normal},
		{"underweight", 50, 175, 16.3, Underweight},
		{"overweight", 90, 175, 29.4, Overweight},
		{"obese", 110, 175, 35.9, Obese},
		{"end to end scenario values", 65, 170, 22.5, Normal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cat := BMI(tt.weight, tt.height)
			assert.InDelta(t, tt.want, got, 0.05)
			assert.Equal(t, tt.category, cat)
		})
	}
}

func TestCategorizeBoundaries(t *testing.T) {
	assert.Equal(t, Underweight, Categorize(18.49))
	assert.Equal(t, Normal, Categorize(18.5))
	assert.Equal(t, Normal, Categorize(24.99))
	assert.Equal(t, Overweight, Categorize(25))
	assert.Equal(t, Overweight, Categorize(29.99))
	assert.Equal(t, Obese, Categorize(30))
}

func TestWaterIntakeLiters(t *testing.T) {
	got := WaterIntakeLiters(70, ActivitySedentary, ClimateTemperate)
	assert.InDelta(t, 2.45, got, 1e-9)

	got = WaterIntakeLiters(70, ActivityAthlete, ClimateHot)
	assert.InDelta(t, 70*35*1.5*1.2/1000, got, 1e-9)
	assert.InDelta(t, 4.41, got, 1e-9)
}

func TestFactorsUnknownDefaultToOne(t *testing.T) {
	assert.Equal(t, 1.0, ActivityFactor("jogging"))
	assert.Equal(t, 1.0, ClimateFactor("tropical-ish"))
}

func TestDailyCalories(t *testing.T) {
	assert.Equal(t, 2500, DailyCalories(Underweight))
	assert.Equal(t, 2200, DailyCalories(Normal))
	assert.Equal(t, 1800, DailyCalories(Overweight))
	assert.Equal(t, 1600, DailyCalories(Obese))
}

func TestBMIRounding(t *testing.T) {
	// The bot presents values rounded to one decimal.
	v, _ := BMI(70, 175)
	assert.Equal(t, 22.9, math.Round(v*10)/10)
}
