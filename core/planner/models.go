package planner

// Task is one daily-focus item; only Completed ever changes after creation.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// ScheduleItem is one weekly-schedule entry; immutable once created.
type ScheduleItem struct {
	ID    string `json:"id"`
	Day   string `json:"day"`
	Title string `json:"title"`
	Time  string `json:"time"`
}
