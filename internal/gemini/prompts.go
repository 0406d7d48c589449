package gemini

import (
	"fmt"
	"math/rand"
	"strings"
)

// Prompt builders for each dialogue. The output format instructions keep the
// replies short enough for a single Telegram message.

// BMIAdvicePrompt asks for a short personal plan around an already computed
// BMI value.
func BMIAdvicePrompt(heightCm, weightKg, age int, occupation string, bmi float64) string {
	return fmt.Sprintf(
		"You're a friendly fitness coach. My height is %d cm, weight is %d kg, age is %d, "+
			"and I work as a %s. My BMI is %.1f. Please keep your response short (under 100 words) "+
			"and include emojis. Respond in this format:\n"+
			"1. 🧠 BMI Insight (1 sentence)\n"+
			"2. 🍽️ Daily Calorie Plan (short)\n"+
			"3. 💡 Health Tip (fun and useful)\n"+
			"4. 💼 Occupation Note (impact on health if any)",
		heightCm, weightKg, age, occupation, bmi)
}

// RecipePrompt asks for one healthy recipe built from the given ingredients.
func RecipePrompt(ingredients []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a healthy recipe using some or all of these ingredients: %s.\n\n",
		strings.Join(ingredients, ", "))
	sb.WriteString(`Format your response exactly like this example, with all these sections:

## 🍲 [RECIPE NAME]

⏱️ *Prep Time:* [time] minutes | 🔥 *Cook Time:* [time] minutes | 🍽️ *Servings:* [number]

### 📋 Ingredients:
• [ingredient with measurement]
• [etc...]

### 📝 Instructions:
1. [step 1]
2. [etc...]

### 💪 Health Benefits:
• [three short bullet points]

### 📊 Nutrition (per serving):
Calories: ~[number] | Protein: [number]g | Carbs: [number]g | Fat: [number]g

Make the recipe quick and easy (under 30 minutes total), healthy, and use as
many of the provided ingredients as possible. Be creative but practical.`)
	return sb.String()
}

// FoodInfoPrompt asks for structured nutrition facts about one food item.
func FoodInfoPrompt(food string) string {
	return fmt.Sprintf(`Provide detailed nutritional information about %s.
Format your response with these exact sections:

1. 🔍 OVERVIEW: Brief description of the food (2-3 sentences)
2. 📊 NUTRITION: Key nutritional values per 100g (calories, protein, carbs, fat)
3. 💪 HEALTH BENEFITS: 3 main health benefits (use bullet points)
4. 👩‍⚕️ HEALTH CONSIDERATIONS: Any allergens, concerns, or moderation advice
5. 🍽️ SERVING SUGGESTIONS: 2-3 healthy ways to include this in meals

Keep each section brief but informative. Use emojis for visual appeal.`, food)
}

// WorkoutPlanPrompt asks for a weekly plan built from the measurements and
// the answers of the workout dialogue.
func WorkoutPlanPrompt(heightCm, weightKg, age int, bmi float64, category string,
	environment, equipment, goal, frequency, limitations string) string {

	return fmt.Sprintf(`You're a certified personal trainer. Create a personalized weekly workout plan.

About me:
- Height: %d cm, weight: %d kg, age: %d
- BMI: %.1f (%s)
- Where I train: %s
- Equipment: %s
- Goal: %s
- Schedule: %s
- Limitations: %s

Respect the limitations strictly. Respond with:
1. 🗓️ Weekly schedule (one line per training day)
2. 💪 Exercises for each day with sets x reps
3. 🔥 One warm-up and one cool-down suggestion
4. ⚠️ A safety note matching my limitations

Keep it under 250 words, use emojis, no introduction.`,
		heightCm, weightKg, age, bmi, category,
		environment, equipment, goal, frequency, limitations)
}

// HealthTipPrompt asks for one short random wellness tip.
func HealthTipPrompt() string {
	return `Generate a single short, practical health tip that is:
1. Evidence-based and actionable
2. No more than 120 characters
3. Focused on nutrition, exercise, mental health, or wellness
4. Include an appropriate emoji at the beginning

Format it as a single sentence without prefix or introduction.`
}

var fallbackTips = []string{
	"💧 Drinking water before meals can help with portion control and hydration.",
	"🚶 Walking for just 30 minutes a day can boost your cardiovascular health.",
	"🥗 Incorporate colorful fruits and vegetables into meals for diverse nutrients.",
}

// FallbackTip returns a canned tip for when the model is unreachable.
func FallbackTip() string {
	return fallbackTips[rand.Intn(len(fallbackTips))]
}
