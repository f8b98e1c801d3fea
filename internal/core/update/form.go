// Package update contains the pure business logic for status updates:
// form validation, pre-population and task planning.
// This is part of the Functional Core - no I/O, only pure functions.
package update

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Level is a confidence rating. Outcomes additionally accept LevelNA.
type Level string

const (
	LevelPoor      Level = "poor"
	LevelMedium    Level = "medium"
	LevelGood      Level = "good"
	LevelExcellent Level = "excellent"
	LevelNA        Level = "na"
)

// Mood is the overall status mood of an update.
type Mood string

const (
	MoodGreat     Mood = "great"
	MoodGood      Mood = "good"
	MoodNeutral   Mood = "neutral"
	MoodConcerned Mood = "concerned"
	MoodWarning   Mood = "warning"
)

// ContainerStatus is the status text of the miscellaneous container's placeholder update.
const ContainerStatus = "Miscellaneous projects tracking"

// Departments records which departments are aligned with the initiative.
type Departments struct {
	Product       bool `json:"product"`
	Tech          bool `json:"tech"`
	Marketing     bool `json:"marketing"`
	ClientSuccess bool `json:"client_success"`
	Commercial    bool `json:"commercial"`
}

// Form is the editable state of a status update.
// Empty strings mean "not set".
type Form struct {
	Plan         Level       `json:"plan" validate:"required,oneof=poor medium good excellent"`
	Alignment    Level       `json:"alignment" validate:"required,oneof=poor medium good excellent"`
	Execution    Level       `json:"execution" validate:"required,oneof=poor medium good excellent"`
	Outcomes     Level       `json:"outcomes" validate:"required,oneof=poor medium good excellent na"`
	Mood         Mood        `json:"mood" validate:"required,oneof=great good neutral concerned warning"`
	LatestStatus string      `json:"latest_status"`
	BiggestRisk  string      `json:"biggest_risk_worry"`
	Departments  Departments `json:"departments"`
}

// TaskInput is one row of an edited task list.
type TaskInput struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	DueDate   string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// FieldError describes one invalid field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a submitted form or task list is invalid.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s %s", f.Field, f.Message)
	}
	return "invalid update: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a form and its task list before a versioned save.
// It returns a *ValidationError listing every problem found.
func Validate(form Form, tasks []TaskInput) error {
	var fields []FieldError

	if err := validate.Struct(form); err != nil {
		fields = append(fields, fieldErrors("", err)...)
	}
	for i, t := range tasks {
		if err := validate.Struct(t); err != nil {
			fields = append(fields, fieldErrors(fmt.Sprintf("tasks[%d].", i), err)...)
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidateTasks checks the task list of an in-place save. Rows with blank
// text are skipped since the save drops them; due dates are checked trimmed.
func ValidateTasks(tasks []TaskInput) error {
	var fields []FieldError
	for i, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		t.DueDate = strings.TrimSpace(t.DueDate)
		if err := validate.Struct(t); err != nil {
			fields = append(fields, fieldErrors(fmt.Sprintf("tasks[%d].", i), err)...)
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func fieldErrors(prefix string, err error) []FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []FieldError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		out = append(out, FieldError{Field: prefix + fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a YYYY-MM-DD date"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Prefill returns the form a new update starts from, given the latest
// update's values. Unset ratings fall back to medium (outcomes to na) and
// an unset mood to neutral.
func Prefill(latest Form) Form {
	form := latest
	if form.Plan == "" {
		form.Plan = LevelMedium
	}
	if form.Alignment == "" {
		form.Alignment = LevelMedium
	}
	if form.Execution == "" {
		form.Execution = LevelMedium
	}
	if form.Outcomes == "" {
		form.Outcomes = LevelNA
	}
	if form.Mood == "" {
		form.Mood = MoodNeutral
	}
	return form
}

// DefaultForm is the form for an initiative with no updates yet.
func DefaultForm() Form {
	return Prefill(Form{})
}

// ContainerPlaceholder is the update lazily created for the miscellaneous
// container. It only holds tasks, so plan, alignment and execution stay unset.
func ContainerPlaceholder() Form {
	return Form{
		Outcomes:     LevelNA,
		Mood:         MoodNeutral,
		LatestStatus: ContainerStatus,
	}
}
