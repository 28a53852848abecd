package auth

import (
	"strings"
	"sync"
)

// Operator is a dashboard user. This is a mock session layer: operators
// live in memory and exist only so the dashboard has someone to attribute
// actions to. There is no registration and no real security boundary.
type Operator struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// OperatorDirectory holds the demo operator set.
type OperatorDirectory struct {
	mu        sync.RWMutex
	operators map[string]Operator
}

// NewOperatorDirectory seeds the directory with demo operators, hashing
// their passwords with the given bcrypt cost.
func NewOperatorDirectory(bcryptCost int) (*OperatorDirectory, error) {
	demo := []struct {
		id, name, email, password string
	}{
		{"op-1", "Demo Agent", "agent@example.com", "password"},
		{"op-2", "Demo Admin", "admin@example.com", "password"},
	}

	dir := &OperatorDirectory{operators: make(map[string]Operator, len(demo))}
	for _, d := range demo {
		hash, err := HashPassword(d.password, bcryptCost)
		if err != nil {
			return nil, err
		}
		dir.operators[strings.ToLower(d.email)] = Operator{
			ID:           d.id,
			Name:         d.name,
			Email:        d.email,
			PasswordHash: hash,
		}
	}
	return dir, nil
}

// Authenticate looks up the operator by email and verifies the password.
func (d *OperatorDirectory) Authenticate(email, password string) (*Operator, bool) {
	d.mu.RLock()
	op, ok := d.operators[strings.ToLower(strings.TrimSpace(email))]
	d.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if ComparePassword(op.PasswordHash, password) != nil {
		return nil, false
	}
	return &op, true
}

// ByID returns the operator with the given id.
func (d *OperatorDirectory) ByID(id string) (*Operator, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, op := range d.operators {
		if op.ID == id {
			return &op, true
		}
	}
	return nil, false
}
