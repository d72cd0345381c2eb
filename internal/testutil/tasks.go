package testutil

import "github.com/datastax/data-api-query/schema"

// Identifiers of the rows in the tasks fixture.
const (
	TaskReport = "a0000000-0000-4000-8000-000000000001"
	TaskReview = "a0000000-0000-4000-8000-000000000002"
	TaskSprint = "a0000000-0000-4000-8000-000000000003"
	TaskBugfix = "a0000000-0000-4000-8000-000000000004"
	TaskDeploy = "a0000000-0000-4000-8000-000000000005"
)

// TasksSchema creates and fills the tasks table.
var TasksSchema = []string{
	`CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		score REAL,
		completed INTEGER NOT NULL,
		secret TEXT
	)`,
	`INSERT INTO tasks VALUES ('` + TaskReport + `', 'Write report', 'quarterly numbers', 'open', 80, 1, 's1')`,
	`INSERT INTO tasks VALUES ('` + TaskReview + `', 'Review 50% discount', 'marketing copy', 'closed', 50, 0, 's2')`,
	`INSERT INTO tasks VALUES ('` + TaskSprint + `', 'Plan sprint', 'team_sync agenda', 'Open', 30, 0, 's3')`,
	`INSERT INTO tasks VALUES ('` + TaskBugfix + `', 'Fix bug', NULL, 'in_progress', 65.5, 1, 's4')`,
	`INSERT INTO tasks VALUES ('` + TaskDeploy + `', 'Deploy', 'release notes', 'closed', NULL, 0, 's5')`,
}

// AllTasks lists every fixture identifier in ascending order.
var AllTasks = []string{TaskReport, TaskReview, TaskSprint, TaskBugfix, TaskDeploy}

// TasksDefinition declares the tasks resource. The secret column is not
// queryable.
func TasksDefinition() schema.Definition {
	return schema.Definition{
		Name: "tasks",
		Columns: []schema.ColumnDefinition{
			{Name: "id", Kind: "uuid", Filterable: true, Sortable: true},
			{Name: "title", Kind: "text", Filterable: true, Sortable: true, Fulltext: true, Like: true},
			{Name: "description", Kind: "text", Filterable: true, Fulltext: true},
			{Name: "status", Kind: "enum", Filterable: true, Sortable: true},
			{Name: "score", Kind: "float", Filterable: true, Sortable: true},
			{Name: "completed", Kind: "boolean", Filterable: true},
			{Name: "secret", Kind: "text"},
		},
	}
}

// TasksDescriptor registers the tasks resource in a fresh registry.
func TasksDescriptor() *schema.Descriptor {
	desc, err := schema.NewRegistry(nil).Register(TasksDefinition())
	PanicIfError(err)
	return desc
}
