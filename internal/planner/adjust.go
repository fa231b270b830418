package planner

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/calebmoran/studyweek/internal/models"
)

// Deltas are pre-parsed numeric nudges applied to tasks and the day budget
// before allocation. Positive priority steps lower urgency, negative steps
// raise it; day weights scale the budget hours. Whatever produces the
// deltas (a rules file today, possibly an LLM front-end someday) lives
// outside this package; the planner only ever sees numbers.
type Deltas struct {
	TaskPriority    map[string]int     `json:"task_priority,omitempty"`    // task id → priority steps
	SubjectPriority map[string]int     `json:"subject_priority,omitempty"` // subject → priority steps
	DayWeight       map[string]float64 `json:"day_weights,omitempty"`      // weekday name → multiplier
}

// Adjuster is the strategy hook for producing deltas. Implementations are
// chosen at configuration time, never inferred from the delta's shape.
type Adjuster interface {
	Adjust(tasks []models.Task, budget models.WeekBudget) (Deltas, error)
}

// FileAdjuster reads deltas from a JSON file. It ignores the current tasks
// and budget; the file is the whole instruction.
type FileAdjuster struct {
	Path string
}

func (a FileAdjuster) Adjust([]models.Task, models.WeekBudget) (Deltas, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return Deltas{}, fmt.Errorf("failed to read adjustment file: %w", err)
	}
	var d Deltas
	if err := json.Unmarshal(data, &d); err != nil {
		return Deltas{}, fmt.Errorf("failed to parse adjustment file %s: %w", a.Path, err)
	}
	for day := range d.DayWeight {
		if _, ok := models.ParseWeekday(day); !ok {
			return Deltas{}, fmt.Errorf("adjustment file %s: unknown weekday %q", a.Path, day)
		}
	}
	return d, nil
}

// ApplyDeltas returns adjusted copies of the tasks and budget. Task-level
// steps win over subject-level ones; priorities clamp to the high..low
// range and budget hours never go negative. The inputs are not mutated.
func ApplyDeltas(tasks []models.Task, budget models.WeekBudget, d Deltas) ([]models.Task, models.WeekBudget) {
	adjusted := make([]models.Task, len(tasks))
	for i, t := range tasks {
		step, ok := d.TaskPriority[t.ID]
		if !ok {
			step = d.SubjectPriority[t.Subject]
		}
		if step != 0 {
			t.Priority = shiftPriority(t.Priority, step)
		}
		adjusted[i] = t
	}

	weighted := make(models.WeekBudget, len(budget))
	for wd, hours := range budget {
		weighted[wd] = hours
	}
	for name, w := range d.DayWeight {
		wd, ok := models.ParseWeekday(name)
		if !ok {
			continue
		}
		weighted[wd] = math.Max(0, weighted[wd]*w)
	}

	return adjusted, weighted
}

func shiftPriority(p models.Priority, step int) models.Priority {
	ranks := []models.Priority{models.PriorityHigh, models.PriorityMedium, models.PriorityLow}
	r := p.Rank() + step
	if r < 0 {
		r = 0
	}
	if r >= len(ranks) {
		r = len(ranks) - 1
	}
	return ranks[r]
}
