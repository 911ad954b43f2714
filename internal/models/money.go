package models

import "fmt"

// MinorUnits is a money amount in the smallest denomination of its currency
// (cents for USD/EUR, pence for GBP). It is a distinct type so that raw
// integers and float amounts cannot be assigned to a money field by accident.
type MinorUnits int64

// String formats the amount as a plain decimal string, e.g. 12345 -> "123.45".
// Assumes a two-decimal currency; formatting for display is the UI's job.
func (m MinorUnits) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
