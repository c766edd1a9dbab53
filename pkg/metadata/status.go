package metadata

import "fmt"

type Status string

const (
	StatusInStock Status = "In Stock"
	StatusInUse   Status = "In Use"
	StatusRepair  Status = "Repair"
	StatusRetired Status = "Retired"
	StatusLost    Status = "Lost"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInStock, StatusInUse, StatusRepair, StatusRetired, StatusLost:
		return true
	default:
		return false
	}
}

// Borrowable reports whether an asset in this status can be handed out.
func (s Status) Borrowable() bool {
	switch s {
	case StatusInUse, StatusRepair, StatusLost:
		return false
	default:
		return true
	}
}

func (s Status) String() string {
	return string(s)
}
