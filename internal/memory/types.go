// Package memory provides the persisted preference record of the meal
// planner and the storage backends that hold it.
package memory

import (
	"errors"
	"time"
)

// RetentionDays is the trailing window, in days, that choice history is kept for.
const RetentionDays = 14

// DateLayout is the on-disk layout of history dates.
const DateLayout = "2006-01-02"

// ErrEmptyName is returned when a favorite, dislike or choice has no name.
var ErrEmptyName = errors.New("memory: name must not be empty")

// Choice is one past meal decision.
type Choice struct {
	Name string `json:"meal" yaml:"meal"`
	Date string `json:"date" yaml:"date"`
}

// Day parses the choice date in loc.
func (c Choice) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, c.Date, loc)
}

// Record is the preference record: favorites, dislikes and recent choices.
// Favorites and Dislikes have set semantics; History is ordered oldest first.
type Record struct {
	Favorites []string `json:"favorites" yaml:"favorites"`
	Dislikes  []string `json:"dislikes" yaml:"dislikes"`
	History   []Choice `json:"last_14_days_suggestions" yaml:"last_14_days_suggestions"`
}

// DefaultRecord returns the record used when nothing has been stored yet.
func DefaultRecord() *Record {
	return &Record{
		Favorites: []string{"Daal Chawal", "Chicken Handi White"},
		Dislikes:  []string{},
		History:   []Choice{},
	}
}
