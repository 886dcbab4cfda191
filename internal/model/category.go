package model

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the meal slot a meal belongs to (breakfast, lunch, dinner).
type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
)

// Categories lists every category in planning order.
var Categories = []Category{Breakfast, Lunch, Dinner}

// Day is a weekday name as shown to the user.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the week in planning order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var titleCaser = cases.Title(language.English)

// Title returns the capitalized label, e.g. "Breakfast".
func (c Category) Title() string {
	return titleCaser.String(string(c))
}

// Index returns the planning position of c, or -1 for unknown values.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// Index returns the position of d within the week, or -1 for unknown values.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

// Slot identifies one (day, category) pair of the weekly plan.
type Slot struct {
	Day      Day
	Category Category
}

// Less orders slots Monday→Sunday, then breakfast→lunch→dinner.
func (s Slot) Less(other Slot) bool {
	if s.Day != other.Day {
		return s.Day.Index() < other.Day.Index()
	}
	return s.Category.Index() < other.Category.Index()
}
