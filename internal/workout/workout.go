package workout

import (
	"fmt"
	"time"
)

// DateLayout is the DD-MM-YYYY layout every record is stamped with.
const DateLayout = "02-01-2006"

type Type int

const (
	Treadmill Type = iota + 1
	RowingErgometer
	ExerciseBike
)

type typeInfo struct {
	name        string
	displayName string
	sheetTitle  string
}

var typeInfos = map[Type]typeInfo{
	Treadmill: {
		name:        "Treadmill",
		displayName: "treadmill",
		sheetTitle:  "Treadmill",
	},
	RowingErgometer: {
		name:        "RowingErgometer",
		displayName: "rowing ergometer",
		sheetTitle:  "Rowing Ergometer",
	},
	ExerciseBike: {
		name:        "ExerciseBike",
		displayName: "exercise bike",
		sheetTitle:  "Exercise Bike",
	},
}

// Types returns all workout types in menu order.
func Types() []Type {
	return []Type{Treadmill, RowingErgometer, ExerciseBike}
}

// ParseChoice maps a menu answer ("1", "2" or "3") to a workout type.
func ParseChoice(choice string) (Type, error) {
	switch choice {
	case "1":
		return Treadmill, nil
	case "2":
		return RowingErgometer, nil
	case "3":
		return ExerciseBike, nil
	default:
		return 0, fmt.Errorf("unknown workout choice: %q", choice)
	}
}

func (t Type) Valid() bool {
	_, ok := typeInfos[t]
	return ok
}

func (t Type) String() string {
	if info, ok := typeInfos[t]; ok {
		return info.name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// DisplayName is the lowercase name used in sentences shown to the user.
func (t Type) DisplayName() string {
	return typeInfos[t].displayName
}

// SheetTitle is the title of the sub-table holding this type's records.
func (t Type) SheetTitle() string {
	return typeInfos[t].sheetTitle
}

// Column is a 1-based column index of a workout sub-table.
type Column int

const (
	ColumnDate Column = iota + 1
	ColumnDuration
	ColumnDistance
)

// Columns returns all sub-table columns, left to right.
func Columns() []Column {
	return []Column{ColumnDate, ColumnDuration, ColumnDistance}
}

// Letter returns the A1 notation letter of the column.
func (c Column) Letter() string {
	return string(rune('A' + int(c) - 1))
}

// Header is row 1 of every workout sub-table. It is never treated as data.
var Header = []string{"Date", "Duration", "Distance"}

type Record struct {
	Date     string `json:"date"`
	Duration string `json:"duration"`
	Distance string `json:"distance"`
}

func NewRecord(at time.Time, duration, distance string) Record {
	return Record{
		Date:     at.Format(DateLayout),
		Duration: duration,
		Distance: distance,
	}
}

// Row returns the record in sub-table column order.
func (r Record) Row() []string {
	return []string{r.Date, r.Duration, r.Distance}
}
