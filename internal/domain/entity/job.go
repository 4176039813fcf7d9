package entity

import "github.com/shopspring/decimal"

// Job is a salaried position a user can hold. Pay comes from the job's
// salary class; a user with several jobs is paid for the best one only.
type Job struct {
	ID          uint64
	JobName     string
	Department  string
	ClassLevel  int
	DailyAmount decimal.Decimal
}
