// Package seed loads the shared chart of accounts shipped with the binary.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/SscSPs/smb_books/internal/core/domain"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SystemUser is recorded as creator of seeded accounts.
const SystemUser = "system"

//go:embed default_chart.yaml
var defaultChart []byte

type chartFile struct {
	Accounts []chartAccount `yaml:"accounts"`
}

type chartAccount struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// LoadDefaultChart parses the embedded chart into shared accounts.
func LoadDefaultChart() ([]domain.Account, error) {
	return ParseChart(defaultChart, time.Now())
}

// ParseChart parses a YAML chart. Codes must be unique and types valid.
func ParseChart(data []byte, now time.Time) ([]domain.Account, error) {
	var file chartFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse chart of accounts: %w", err)
	}

	seen := make(map[string]bool, len(file.Accounts))
	accounts := make([]domain.Account, 0, len(file.Accounts))
	for i, a := range file.Accounts {
		if a.Code == "" || a.Name == "" {
			return nil, fmt.Errorf("chart entry %d: code and name are required", i+1)
		}
		if seen[a.Code] {
			return nil, fmt.Errorf("chart entry %d: duplicate code %s", i+1, a.Code)
		}
		seen[a.Code] = true

		accountType := domain.AccountType(a.Type)
		if !accountType.Valid() {
			return nil, fmt.Errorf("chart entry %d: invalid account type %q", i+1, a.Type)
		}
		accounts = append(accounts, domain.Account{
			AccountID:   uuid.NewString(),
			Code:        a.Code,
			Name:        a.Name,
			AccountType: accountType,
			Description: a.Description,
			IsActive:    true,
			AuditFields: domain.NewAuditFields(SystemUser, now),
		})
	}
	return accounts, nil
}
