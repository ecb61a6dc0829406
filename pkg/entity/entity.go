package entity

import (
	"time"
)

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Gender       string
	Birthday     *time.Time
	Age          int
}

type Routine struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Name      string    `json:"name"`
	Days      []string  `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

type Exercise struct {
	ID             int64  `json:"id"`
	RoutineID      int64  `json:"routine_id"`
	Name           string `json:"name"`
	Sets           int    `json:"sets"`
	RepsOrDuration string `json:"reps_or_duration"`
}

type ExerciseLog struct {
	ID                   int64     `json:"id"`
	AccountID            int64     `json:"account_id"`
	ExerciseID           int64     `json:"exercise_id"`
	LogDate              time.Time `json:"log_date"`
	ActualSets           int       `json:"actual_sets"`
	ActualRepsOrDuration string    `json:"actual_reps_or_duration"`
	Completed            bool      `json:"completed"`
}

// LogView is an exercise log joined with its routine and exercise names,
// the shape the history listing renders.
type LogView struct {
	LogID                int64     `json:"log_id"`
	LogDate              time.Time `json:"log_date"`
	RoutineName          string    `json:"routine_name"`
	ExerciseName         string    `json:"exercise_name"`
	ActualSets           int       `json:"actual_sets"`
	ActualRepsOrDuration string    `json:"actual_reps_or_duration"`
	Completed            bool      `json:"completed"`
}

// ExerciseOption is one selectable exercise in the log-entry picker,
// labelled with the routine it belongs to.
type ExerciseOption struct {
	ExerciseID   int64  `json:"exercise_id"`
	RoutineName  string `json:"routine_name"`
	ExerciseName string `json:"exercise_name"`
}
