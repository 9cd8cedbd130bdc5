package enum

// ShiftStatus is the state of an operator work session. A shift opens once,
// closes once, and a closed shift never reopens.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "open"
	ShiftClosed ShiftStatus = "closed"
)

func (s ShiftStatus) String() string {
	return string(s)
}
