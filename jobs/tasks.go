package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/firedesk/timecard/internal/kronos"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendMail is the task type for transactional mail delivery.
	TaskTypeSendMail = "mail:send"
	// TaskTypeGenerate is the task type for rendering a signed timecard PDF.
	TaskTypeGenerate = "timecard:generate"
	// TaskTypeReconcile is the task type for the store/ledger audit sweep.
	TaskTypeReconcile = "store:reconcile"
)

// SendMailPayload describes the information required to send an email.
type SendMailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// NewSendMailTask constructs an asynq task for mail delivery.
func NewSendMailTask(payload SendMailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendMail, data), nil
}

// GeneratePayload describes a signed timecard waiting to be rendered and stored.
type GeneratePayload struct {
	EmployeeID    string              `json:"employeeId"`
	PayPeriod     string              `json:"payPeriod"`
	SignatureName string              `json:"signatureName"`
	SignatureDate string              `json:"signatureDate"`
	Data          kronos.ScheduleData `json:"data"`
}

// NewGenerateTask constructs an asynq task for timecard generation.
func NewGenerateTask(payload GeneratePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeGenerate, data), nil
}

// NewReconcileTask constructs the parameterless reconcile sweep task.
func NewReconcileTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReconcile, nil)
}
