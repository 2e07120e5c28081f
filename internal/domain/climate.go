package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by the climate dataset and
// by date query parameters.
const DateLayout = "2006-01-02"

// DateColumn is the name of the climate dataset's key column.
const DateColumn = "date"

// ClimateRecord is one daily observation.
type ClimateRecord struct {
	Date         time.Time
	MeanTemp     float64
	Humidity     float64
	WindSpeed    float64
	MeanPressure float64
}

// ClimateColumn identifies a numeric column of the climate dataset.
type ClimateColumn int

const (
	MeanTemp ClimateColumn = iota
	Humidity
	WindSpeed
	MeanPressure
)

var climateColumnNames = [...]string{
	MeanTemp:     "meantemp",
	Humidity:     "humidity",
	WindSpeed:    "wind_speed",
	MeanPressure: "meanpressure",
}

// ClimateColumns returns the numeric columns in dataset order.
func ClimateColumns() []ClimateColumn {
	return []ClimateColumn{MeanTemp, Humidity, WindSpeed, MeanPressure}
}

// ClimateColumnNames returns every column name in dataset order, date first.
func ClimateColumnNames() []string {
	names := []string{DateColumn}
	for _, c := range ClimateColumns() {
		names = append(names, c.String())
	}
	return names
}

func (c ClimateColumn) String() string {
	if c < MeanTemp || c > MeanPressure {
		return ""
	}
	return climateColumnNames[c]
}

// ParseClimateColumn resolves a column name. The date column and unknown
// names are rejected with ErrInvalidColumn. Names are case-sensitive.
func ParseClimateColumn(name string) (ClimateColumn, error) {
	for i, n := range climateColumnNames {
		if n == name {
			return ClimateColumn(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, name)
}

// Value returns the record's value for column c.
func (r ClimateRecord) Value(c ClimateColumn) float64 {
	switch c {
	case MeanTemp:
		return r.MeanTemp
	case Humidity:
		return r.Humidity
	case WindSpeed:
		return r.WindSpeed
	case MeanPressure:
		return r.MeanPressure
	}
	panic(fmt.Sprintf("domain: unknown climate column %d", int(c)))
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidParameter, s)
	}
	return t, nil
}
