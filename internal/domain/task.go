package domain

// TimeBlock is one planner entry: a span of a day spent on a named task.
type TimeBlock struct {
	Date      Date
	Start     ClockTime
	End       ClockTime
	Name      string
	Linked    bool
	Completed bool
}

// Length is End - Start. It is negative when the entry ends before it starts.
func (b TimeBlock) Length() Duration {
	return b.End.Sub(b.Start)
}

// TaskTimeTotals accumulates block lengths for one task, split by the
// completed flag.
type TaskTimeTotals struct {
	Completed   Duration
	Uncompleted Duration
}

// Add folds a block into the totals.
func (t *TaskTimeTotals) Add(b TimeBlock) {
	if b.Completed {
		t.Completed = t.Completed.Add(b.Length())
		return
	}
	t.Uncompleted = t.Uncompleted.Add(b.Length())
}

// Allocated is completed plus uncompleted time.
func (t TaskTimeTotals) Allocated() Duration {
	return t.Completed.Add(t.Uncompleted)
}

// TimeTracking holds the three optional estimate fields of a task note.
type TimeTracking struct {
	Original  *Duration
	Spent     *Duration
	Remaining *Duration
}

// TaskMetadata is a task note's properties. Name is the note's file stem,
// which is also how planner entries refer to the task.
type TaskMetadata struct {
	Name      string
	Path      string
	Priority  Priority
	Status    TaskStatus
	IssueType IssueType
	DueDate   *Date
	JiraKey   string
	Sprints   []SprintTag
	Time      TimeTracking
	Parent    string
	Children  []string
	Extra     map[string]any
}

// InSprint reports whether the note lists tag among its sprints.
func (m TaskMetadata) InSprint(tag SprintTag) bool {
	for _, s := range m.Sprints {
		if s == tag {
			return true
		}
	}
	return false
}

// BalanceEntry is the reconciled view of one task.
//
// Remaining is nil both for tasks without metadata and for notes without a
// "time left" field; HasMetadata tells the two apart.
type BalanceEntry struct {
	InSprint    bool
	HasMetadata bool
	Remaining   *Duration
	Completed   Duration
	Uncompleted Duration
}

func (e BalanceEntry) Allocated() Duration {
	return e.Completed.Add(e.Uncompleted)
}

func (e BalanceEntry) RemainingOrZero() Duration {
	return DurationFromPtrWithDefault(Zero, e.Remaining)
}

// Diff is allocated minus remaining.
func (e BalanceEntry) Diff() Duration {
	return e.Allocated().Sub(e.RemainingOrZero())
}
