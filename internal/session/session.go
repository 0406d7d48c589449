// Package session keeps all per-user state: the active dialogue progress,
// historical computation records and the latest water plan. State is volatile
// and lives only for the process lifetime.
package session

import (
	"sync"
	"time"

	"github.com/Ramz1k999/diplomaproject/internal/health"
)

// DialogueKind names one of the guided dialogues.
type DialogueKind string

const (
	KindBMI     DialogueKind = "bmi"
	KindWater   DialogueKind = "water"
	KindRecipe  DialogueKind = "recipe"
	KindFood    DialogueKind = "food"
	KindWorkout DialogueKind = "workout"
)

// ReminderFrequency is the user's choice for recurring water reminders.
type ReminderFrequency string

const (
	RemindNone   ReminderFrequency = "none"
	RemindEvery2 ReminderFrequency = "2h"
	RemindEvery3 ReminderFrequency = "3h"
)

// BMIData collects the answers of the BMI dialogue.
type BMIData struct {
	HeightCm   int
	WeightKg   int
	Age        int
	Occupation string
}

// WaterData collects the answers of the water-plan dialogue.
type WaterData struct {
	WeightKg  int
	Activity  health.ActivityLevel
	Climate   health.Climate
	Frequency ReminderFrequency
}

// RecipeData collects the answers of the recipe dialogue.
type RecipeData struct {
	Ingredients []string
}

// FoodData collects the answers of the food-info dialogue.
type FoodData struct {
	Food string
}

// WorkoutData collects the answers of the workout-plan dialogue. The body
// measurements are seeded from the latest BMI record before the first step.
type WorkoutData struct {
	HeightCm    int
	WeightKg    int
	Age         int
	BMI         float64
	Category    health.BMICategory
	Environment string
	Equipment   string
	Goal        string
	Frequency   string
	Limitations string
}

// Progress is the state of the one active dialogue of a session: which
// dialogue, which step, and the typed answers collected so far. Exactly one
// of the data fields matching Kind is set.
type Progress struct {
	Kind DialogueKind
	// Step is the index of the step currently awaiting input. A negative
	// value means the dialogue is waiting for the reuse-vs-restart choice
	// offered at entry.
	Step int

	BMI     *BMIData
	Water   *WaterData
	Recipe  *RecipeData
	Food    *FoodData
	Workout *WorkoutData
}

// BMIRecord is an immutable past BMI computation.
type BMIRecord struct {
	Taken      time.Time
	HeightCm   int
	WeightKg   int
	Age        int
	Occupation string
	BMI        float64
	Category   health.BMICategory
}

// WorkoutRecord is an immutable past workout-plan generation.
type WorkoutRecord struct {
	Taken       time.Time
	Environment string
	Equipment   string
	Goal        string
	Frequency   string
	Limitations string
	Plan        string
}

// WaterPlan is the latest computed water-intake plan, read by the reminder
// scheduler when a reminder fires.
type WaterPlan struct {
	Computed  time.Time
	WeightKg  int
	Activity  health.ActivityLevel
	Climate   health.Climate
	Liters    float64
	Frequency ReminderFrequency
}

// Session is the accumulated state for one user. All mutation happens under
// Store.Do, which holds mu for the duration of an event.
type Session struct {
	UserID        int64
	ChatID        int64
	Lang          string
	LastMessageID int

	Active         *Progress
	BMIHistory     []BMIRecord
	WorkoutHistory []WorkoutRecord
	WaterPlan      *WaterPlan

	mu sync.Mutex
}

// LastBMI returns the most recent BMI record, or false when there is none.
func (s *Session) LastBMI() (BMIRecord, bool) {
	if len(s.BMIHistory) == 0 {
		return BMIRecord{}, false
	}
	return s.BMIHistory[len(s.BMIHistory)-1], true
}

// ClearActive drops the in-progress dialogue. History is never touched here.
func (s *Session) ClearActive() {
	s.Active = nil
}
