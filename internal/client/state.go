// Package client mirrors the signed-in user's tasks locally and keeps
// the mirror in step with the task API, one request per action.
package client

// Task is the wire representation of a task.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	OwnerID   string `json:"ownerId,omitempty"`
}

type Status int

const (
	StatusUnauthenticated Status = iota
	StatusLoading
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is the local mirror of the user's tasks in display order.
type State struct {
	Status Status
	Tasks  []Task
}

type ActionType int

const (
	ActionReplaceAll ActionType = iota
	ActionCreated
	ActionUpdated
	ActionDeleted
)

type Action struct {
	Type ActionType
	// Tasks is the full list for ActionReplaceAll.
	Tasks []Task
	// Task is the server's record for ActionCreated and ActionUpdated.
	Task Task
	// ID is the removed task for ActionDeleted.
	ID string
}

// Reduce returns the state after applying the action. It never
// modifies the task slice of the given state.
func Reduce(state State, action Action) State {
	next := State{Status: state.Status}

	switch action.Type {
	case ActionReplaceAll:
		next.Tasks = append(make([]Task, 0, len(action.Tasks)), action.Tasks...)
		next.Status = StatusReady
	case ActionCreated:
		next.Tasks = append(make([]Task, 0, len(state.Tasks)+1), state.Tasks...)
		next.Tasks = append(next.Tasks, action.Task)
	case ActionUpdated:
		next.Tasks = make([]Task, len(state.Tasks))
		for i, t := range state.Tasks {
			if t.ID == action.Task.ID {
				t = action.Task
			}
			next.Tasks[i] = t
		}
	case ActionDeleted:
		next.Tasks = make([]Task, 0, len(state.Tasks))
		for _, t := range state.Tasks {
			if t.ID != action.ID {
				next.Tasks = append(next.Tasks, t)
			}
		}
	default:
		next.Tasks = append([]Task(nil), state.Tasks...)
	}
	return next
}

type Stats struct {
	Completed int
	Total     int
}

func (s State) Stats() Stats {
	stats := Stats{Total: len(s.Tasks)}
	for _, t := range s.Tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	return stats
}
