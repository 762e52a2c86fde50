package utils

import (
	"encoding/json"
	"log"

	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/repository"
)

// AuditEntry describes one admin mutation.
type AuditEntry struct {
	UserID       uint
	IP           string
	UserAgent    string
	Action       string
	ResourceType string
	ResourceID   string
	Before       any
	After        any
	Description  string
}

// LogAuditAsync writes the entry in the background; failures are only logged.
var LogAuditAsync = func(entry AuditEntry, repos repository.AuditRepo) {
	go func() {
		if err := LogAudit(entry, repos); err != nil {
			log.Printf("[LogAudit] error: %v", err)
		}
	}()
}

var LogAudit = func(entry AuditEntry, repos repository.AuditRepo) error {
	var oldData, newData []byte
	var err error

	if entry.Before != nil {
		oldData, err = json.Marshal(entry.Before)
		if err != nil {
			log.Printf("Audit marshal oldData error: %v", err)
		}
	}
	if entry.After != nil {
		newData, err = json.Marshal(entry.After)
		if err != nil {
			log.Printf("Audit marshal newData error: %v", err)
		}
	}

	auditLog := &audit.AuditLog{
		UserID:       entry.UserID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		OldData:      oldData,
		NewData:      newData,
		IPAddress:    entry.IP,
		UserAgent:    entry.UserAgent,
		Description:  entry.Description,
	}

	return repos.Record(auditLog)
}
