package models

// Task is a single to-do entry owned by one user.
//
// ID is assigned by the repository on creation and is opaque to every
// other layer. OwnerID is the verified principal that created the task.
type Task struct {
	ID        string
	OwnerID   string
	Text      string
	Completed bool
}
