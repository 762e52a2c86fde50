package jobapp

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const CommunicationStatusUpdateEmail = "status_update_email"

// Communication is one notification event sent to a candidate.
type Communication struct {
	Type      string    `json:"type"`
	Status    Status    `json:"status"`
	SentAt    time.Time `json:"sent_at"`
	Subject   string    `json:"subject"`
	Recipient string    `json:"recipient"`
}

// CommunicationLog is the append-only record of notifications for an application.
// Entries can be read and appended; existing entries cannot be replaced or reordered.
type CommunicationLog struct {
	entries []Communication
}

func (l *CommunicationLog) Append(c Communication) {
	l.entries = append(l.entries, c)
}

func (l CommunicationLog) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the log in append order.
func (l CommunicationLog) Entries() []Communication {
	out := make([]Communication, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l CommunicationLog) Last() (Communication, bool) {
	if len(l.entries) == 0 {
		return Communication{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l CommunicationLog) MarshalJSON() ([]byte, error) {
	if l.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.entries)
}

func (l *CommunicationLog) UnmarshalJSON(data []byte) error {
	var entries []Communication
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	l.entries = entries
	return nil
}

func (l CommunicationLog) Value() (driver.Value, error) {
	b, err := l.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *CommunicationLog) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		l.entries = nil
		return nil
	case []byte:
		return l.UnmarshalJSON(v)
	case string:
		return l.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported communications value %T", value)
	}
}

func (CommunicationLog) GormDataType() string {
	return "jsonb"
}
