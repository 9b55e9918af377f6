package search

import "time"

// Task is a scheduled function that can be cancelled.
type Task interface {
	// Stop prevents the task from running. It returns false if the task
	// already ran or was already stopped.
	Stop() bool
}

// Scheduler runs functions after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// RealTime schedules on the wall clock with time.AfterFunc.
var RealTime Scheduler = realTime{}

type realTime struct{}

func (realTime) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}
