package model

import "time"

type Exercise struct {
	ID             string    `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	BodyPart       string    `json:"bodyPart"`
	Sets           int       `json:"sets"`
	Reps           int       `json:"reps"`
	PersonalRecord *float64  `json:"personalRecord"`
	CreatedAt      time.Time `json:"createdAt"`
}

type BodyPart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkoutSet is one performed set within a session.
type WorkoutSet struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// WorkoutExercise ties performed sets to an exercise definition.
type WorkoutExercise struct {
	ExerciseID string       `json:"exerciseId"`
	Sets       []WorkoutSet `json:"sets"`
}

// WorkoutSession is one training day. Exercises is stored as a JSON column;
// a session is upserted wholesale by id.
type WorkoutSession struct {
	ID        string            `json:"id"`
	UserID    string            `json:"-"`
	Date      string            `json:"date"`
	Exercises []WorkoutExercise `json:"exercises"`
	CreatedAt time.Time         `json:"createdAt"`
}
