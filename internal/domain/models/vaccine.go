package models

// VaccineStatus is the lifecycle of one scheduled dose.
type VaccineStatus string

const (
	VaccinePending   VaccineStatus = "pending"
	VaccineCompleted VaccineStatus = "completed"
	VaccineMissed    VaccineStatus = "missed"
)

// Vaccine is one scheduled dose for a flock. Five of these are generated
// automatically when a flock is created (days 1, 7, 14, 21 and 28 of the
// standard broiler program); ScheduledDate is computed once and never
// recomputed afterwards.
type Vaccine struct {
	ID            string        `json:"id"`
	FlockID       string        `json:"flockId"`
	Name          string        `json:"name"`
	ScheduledDate string        `json:"scheduledDate"` // BS
	Status        VaccineStatus `json:"status"`
	Notes         string        `json:"notes,omitempty"`
}

// VaccineScheduleEntry describes one step of the standard vaccination
// program relative to the flock start date.
type VaccineScheduleEntry struct {
	DayOffset int
	Name      string
}

// StandardVaccineSchedule is the broiler program applied to every new flock.
var StandardVaccineSchedule = []VaccineScheduleEntry{
	{DayOffset: 1, Name: "Marek (F1)"},
	{DayOffset: 7, Name: "Newcastle (F1)"},
	{DayOffset: 14, Name: "Gumboro (IBD)"},
	{DayOffset: 21, Name: "Newcastle (Booster)"},
	{DayOffset: 28, Name: "Gumboro (Booster)"},
}
