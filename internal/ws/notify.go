package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const EventAssignmentsCreated = "assignments_created"

type AssignmentsCreatedEvent struct {
	Type      string   `json:"type"`
	Employees []string `json:"employee_ids"`
	Created   int      `json:"created"`
	Failures  int      `json:"failures"`
	Timestamp string   `json:"timestamp"`
}

// NotifyAssignmentsCreated tells subscribers that an auto-assignment run
// inserted new course assignments. Runs that created nothing are not sent.
func (h *Hub) NotifyAssignmentsCreated(employeeIDs []string, created, failures int) {
	if h == nil || created <= 0 {
		return
	}
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	evt := AssignmentsCreatedEvent{
		Type:      EventAssignmentsCreated,
		Employees: employeeIDs,
		Created:   created,
		Failures:  failures,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.log.Error("encode ws event failed", zap.String("type", evt.Type), zap.Error(err))
		return
	}
	h.Broadcast(b)
}
