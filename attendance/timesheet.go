// Package attendance implements the daily attendance state machine and the
// read-side log aggregation. Each user gets one timesheet row per calendar
// day with four set-once timestamps; actions map to fields and never
// overwrite an existing value.
package attendance

import "time"

// Action labels accepted from the dashboard buttons.
const (
	ActionStart      = "Start"
	ActionBreak15    = "Break 15 min"
	ActionBreak30    = "Break 30 min"
	ActionBackAtSeat = "Back at Seat"
	ActionLeave      = "Leave"
)

// Field identifies one of the four set-once timestamp columns.
type Field string

const (
	FieldStart  Field = "start_time"
	FieldBreak  Field = "break_time"
	FieldOnSeat Field = "onseat_time"
	FieldLeave  Field = "leave_time"
)

// fieldForAction maps a button label to its target field.
// Both break variants land on the same field.
func fieldForAction(label string) (Field, bool) {
	switch label {
	case ActionStart:
		return FieldStart, true
	case ActionBreak15, ActionBreak30:
		return FieldBreak, true
	case ActionBackAtSeat:
		return FieldOnSeat, true
	case ActionLeave:
		return FieldLeave, true
	default:
		return "", false
	}
}

// Timesheet is one user's attendance record for one calendar day.
// Nil timestamp means the action has not happened yet.
type Timesheet struct {
	Username string
	Date     time.Time
	Start    *time.Time
	Break    *time.Time
	OnSeat   *time.Time
	Leave    *time.Time
}

// FieldTime returns the timestamp stored in the given field.
func (t Timesheet) FieldTime(f Field) *time.Time {
	switch f {
	case FieldStart:
		return t.Start
	case FieldBreak:
		return t.Break
	case FieldOnSeat:
		return t.OnSeat
	case FieldLeave:
		return t.Leave
	default:
		return nil
	}
}
