package model

type Task struct {
	ID                int    `json:"id" db:"id"`
	Title             string `json:"title" db:"title"`
	ListID            int    `json:"listId" db:"list_id"`
	ExpectedPomodoros int    `json:"expectedPomodoros" db:"expected_pomodoros"`
	CompletedCycles   int    `json:"completedCycles" db:"completed_cycles"`
	CompletedStatus   bool   `json:"completedStatus" db:"completed_status"`
}

type NewTask struct {
	Title             *string
	ExpectedPomodoros *int
	CompletedCycles   *int
	CompletedStatus   *bool
}

type TaskPatch struct {
	Title             *string
	ListID            *int
	ExpectedPomodoros *int
	CompletedCycles   *int
	CompletedStatus   *bool
}
