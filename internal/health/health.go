// Package health holds the pure metric calculators: BMI with its category
// thresholds and the daily water intake formula. Callers validate ranges
// before calling.
package health

// BMICategory classifies a BMI value.
type BMICategory string

const (
	Underweight BMICategory = "Underweight"
	Normal      BMICategory = "Normal"
	Overweight  BMICategory = "Overweight"
	Obese       BMICategory = "Obese"
)

// Activity levels and their water-intake multipliers.
type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLight     ActivityLevel = "light"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHeavy     ActivityLevel = "heavy"
	ActivityAthlete   ActivityLevel = "athlete"
)

// Climate zones and their water-intake multipliers.
type Climate string

const (
	ClimateCold      Climate = "cold"
	ClimateTemperate Climate = "temperate"
	ClimateHot       Climate = "hot"
)

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary: 1.0,
	ActivityLight:     1.1,
	ActivityModerate:  1.2,
	ActivityHeavy:     1.3,
	ActivityAthlete:   1.5,
}

var climateFactors = map[Climate]float64{
	ClimateCold:      0.9,
	ClimateTemperate: 1.0,
	ClimateHot:       1.2,
}

// ActivityFactor returns the multiplier for a level, 1.0 for unknown values.
func ActivityFactor(level ActivityLevel) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return 1.0
}

// ClimateFactor returns the multiplier for a climate, 1.0 for unknown values.
func ClimateFactor(c Climate) float64 {
	if f, ok := climateFactors[c]; ok {
		return f
	}
	return 1.0
}

// BMI computes body mass index from weight in kilograms and height in
// centimeters and classifies it.
func BMI(weightKg, heightCm float64) (float64, BMICategory) {
	m := heightCm / 100
	bmi := weightKg / (m * m)
	return bmi, Categorize(bmi)
}

// Categorize maps a BMI value onto its category.
func Categorize(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 25:
		return Normal
	case bmi < 30:
		return Overweight
	default:
		return Obese
	}
}

// DailyCalories returns the recommended daily calorie intake for a category.
func DailyCalories(c BMICategory) int {
	switch c {
	case Underweight:
		return 2500
	case Normal:
		return 2200
	case Overweight:
		return 1800
	default:
		return 1600
	}
}

// Advice returns a one-line recommendation for a category.
func Advice(c BMICategory) string {
	switch c {
	case Underweight:
		return "Try increasing calorie intake."
	case Normal:
		return "Great shape!"
	case Overweight:
		return "Consider exercise & diet."
	default:
		return "Consult a specialist."
	}
}

// WaterIntakeLiters estimates daily water intake in liters: 35 ml per kg of
// body weight, adjusted for activity level and climate.
func WaterIntakeLiters(weightKg float64, activity ActivityLevel, climate Climate) float64 {
	ml := weightKg * 35 * ActivityFactor(activity) * ClimateFactor(climate)
	return ml / 1000
}
