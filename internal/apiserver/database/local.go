package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ubuntu-bounty/crm/internal/common/config"
)

// storedUser re-exposes the login PIN hash for persistence; the model
// excludes it from JSON so it can never leak through an API response.
type storedUser struct {
	*SystemUser
	LoginPIN string `json:"login_pin"`
}

type localState struct {
	Agents        []*FieldAgent     `json:"agents"`
	Leads         []*Lead           `json:"leads"`
	Users         []*storedUser     `json:"users"`
	Settings      []*CompanySetting `json:"settings"`
	NextAgentID   uint              `json:"next_agent_id"`
	NextLeadID    uint              `json:"next_lead_id"`
	NextUserID    uint              `json:"next_user_id"`
	NextSettingID uint              `json:"next_setting_id"`
}

// Local implements the Store interface on a single JSON file, for
// deployments without a database. Every mutation rewrites the whole
// file. Access is serialized by a mutex; the format is not safe to
// share between processes.
type Local struct {
	mu    sync.Mutex
	path  string
	state localState
}

// NewLocal creates a Store backed by a JSON state file
func NewLocal(cfg *config.LocalStorageConfig) (Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("local storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &Local{path: cfg.Path}
	data, err := os.ReadFile(cfg.Path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// fresh store
	case err != nil:
		return nil, fmt.Errorf("failed to read state file: %w", err)
	default:
		if err := json.Unmarshal(data, &s.state); err != nil {
			return nil, fmt.Errorf("failed to parse state file: %w", err)
		}
		for _, u := range s.state.Users {
			u.SystemUser.LoginPIN = u.LoginPIN
		}
	}
	return s, nil
}

func (s *Local) Close() error { return nil }

// persist rewrites the entire state file; callers must hold the mutex
func (s *Local) persist() error {
	for _, u := range s.state.Users {
		u.LoginPIN = u.SystemUser.LoginPIN
	}
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *Local) CreateAgent(ctx context.Context, agent *FieldAgent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.NextAgentID++
	agent.ID = s.state.NextAgentID
	agent.IsActive = true
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = agent.CreatedAt
	s.state.Agents = append(s.state.Agents, agent)
	return s.persist()
}

func (s *Local) ListAgents(ctx context.Context, filter AgentFilter) ([]*FieldAgent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var agents []*FieldAgent
	for _, a := range s.state.Agents {
		if !a.IsActive {
			continue
		}
		if filter.Location != "" {
			if !strings.Contains(strings.ToLower(a.AgentLocation), strings.ToLower(filter.Location)) {
				continue
			}
		} else if filter.StartDate != nil && filter.EndDate != nil {
			if a.CreatedAt.Before(*filter.StartDate) || a.CreatedAt.After(*filter.EndDate) {
				continue
			}
		}
		agents = append(agents, a)
	}

	sort.Slice(agents, func(i, j int) bool {
		if !agents[i].CreatedAt.Equal(agents[j].CreatedAt) {
			return agents[i].CreatedAt.After(agents[j].CreatedAt)
		}
		return agents[i].ID > agents[j].ID
	})
	return agents, nil
}

func (s *Local) GetAgentWithLeadCounts(ctx context.Context, id uint) (*AgentWithLeadCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent := s.findAgent(id)
	if agent == nil || !agent.IsActive {
		return nil, ErrNotFound
	}

	row := &AgentWithLeadCounts{FieldAgent: *agent}
	for _, l := range s.state.Leads {
		if l.AgentID != id {
			continue
		}
		row.TotalLeads++
		if l.IsClaimed {
			row.ClaimedLeads++
		} else {
			row.UnclaimedLeads++
		}
	}
	return row, nil
}

func (s *Local) ListAgentLocations(ctx context.Context) ([]*LocationCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64)
	for _, a := range s.state.Agents {
		if a.IsActive && a.AgentLocation != "" {
			counts[a.AgentLocation]++
		}
	}

	rows := make([]*LocationCount, 0, len(counts))
	for loc, n := range counts {
		rows = append(rows, &LocationCount{AgentLocation: loc, AgentCount: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AgentCount != rows[j].AgentCount {
			return rows[i].AgentCount > rows[j].AgentCount
		}
		return rows[i].AgentLocation < rows[j].AgentLocation
	})
	return rows, nil
}

func (s *Local) SoftDeleteAgent(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agent := s.findAgent(id)
	if agent == nil || !agent.IsActive {
		return ErrNotFound
	}
	agent.IsActive = false
	agent.UpdatedAt = time.Now()
	// Leads referencing the agent are intentionally kept, matching the
	// database-backed store.
	return s.persist()
}

func (s *Local) CreateLead(ctx context.Context, lead *Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.NextLeadID++
	lead.ID = s.state.NextLeadID
	lead.IsClaimed = false
	lead.ClaimedBy = nil
	lead.ClaimedAt = nil
	lead.CreatedAt = time.Now()
	s.state.Leads = append(s.state.Leads, lead)
	return s.persist()
}

func (s *Local) ListLeads(ctx context.Context, filter LeadFilter) ([]*LeadWithAgent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []*LeadWithAgent
	for _, l := range s.state.Leads {
		switch {
		case filter.Search != "":
			term := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(l.ClientFullName), term) &&
				!strings.Contains(strings.ToLower(l.ClientContact1), term) &&
				!strings.Contains(strings.ToLower(l.ClientContact2), term) {
				continue
			}
		case filter.StartDate != nil && filter.EndDate != nil:
			if l.CreatedAt.Before(*filter.StartDate) || l.CreatedAt.After(*filter.EndDate) {
				continue
			}
		case filter.AgentID != 0:
			if l.AgentID != filter.AgentID {
				continue
			}
		case filter.ClaimedOnly:
			if !l.IsClaimed {
				continue
			}
		}

		row := &LeadWithAgent{Lead: *l}
		// Inactive agents still resolve, matching the SQL left join.
		if agent := s.findAgent(l.AgentID); agent != nil {
			name := agent.FullName
			loc := agent.AgentLocation
			row.AgentName = &name
			row.AgentLocation = &loc
		}
		rows = append(rows, row)
	}

	if filter.ClaimedOnly && filter.Search == "" && filter.StartDate == nil && filter.AgentID == 0 {
		sort.Slice(rows, func(i, j int) bool {
			ti, tj := rows[i].ClaimedAt, rows[j].ClaimedAt
			if ti == nil || tj == nil {
				return tj == nil
			}
			return ti.After(*tj)
		})
		return rows, nil
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

func (s *Local) ClaimLead(ctx context.Context, id uint, claimedBy string) (*Lead, error) {
	if strings.TrimSpace(claimedBy) == "" {
		return nil, ErrEmptyClaimant
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lead := s.findLead(id)
	if lead == nil {
		return nil, ErrNotFound
	}
	if lead.IsClaimed {
		return nil, ErrLeadClaimed
	}

	now := time.Now()
	lead.IsClaimed = true
	lead.ClaimedBy = &claimedBy
	lead.ClaimedAt = &now
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := *lead
	return &out, nil
}

func (s *Local) ReverseClaim(ctx context.Context, id uint) (*Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := s.findLead(id)
	if lead == nil {
		return nil, ErrNotFound
	}

	lead.IsClaimed = false
	lead.ClaimedBy = nil
	lead.ClaimedAt = nil
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := *lead
	return &out, nil
}

func (s *Local) DeleteLead(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.state.Leads {
		if l.ID == id {
			s.state.Leads = append(s.state.Leads[:i], s.state.Leads[i+1:]...)
			return s.persist()
		}
	}
	return ErrNotFound
}

func (s *Local) CreateUser(ctx context.Context, user *SystemUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	s.state.NextUserID++
	user.ID = s.state.NextUserID
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.state.Users = append(s.state.Users, &storedUser{SystemUser: user})
	return s.persist()
}

func (s *Local) ListUsers(ctx context.Context) ([]*SystemUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []*SystemUser
	for _, u := range s.state.Users {
		if u.IsActive {
			users = append(users, u.SystemUser)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (s *Local) GetUserByEmail(ctx context.Context, email string) (*SystemUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.Email == email && u.IsActive {
			out := *u.SystemUser
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Local) GetUserByID(ctx context.Context, id uint) (*SystemUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.ID == id && u.IsActive {
			out := *u.SystemUser
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Local) UpdateUser(ctx context.Context, user *SystemUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.ID != user.ID && u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	for _, u := range s.state.Users {
		if u.ID == user.ID {
			user.UpdatedAt = time.Now()
			*u.SystemUser = *user
			return s.persist()
		}
	}
	return ErrNotFound
}

func (s *Local) SoftDeleteUser(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.state.Users {
		if u.ID == id && u.IsActive {
			u.IsActive = false
			u.UpdatedAt = time.Now()
			return s.persist()
		}
	}
	return ErrNotFound
}

func (s *Local) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}
	for _, a := range s.state.Agents {
		if a.IsActive {
			stats.TotalAgents++
		}
	}
	for _, l := range s.state.Leads {
		stats.TotalLeads++
		if l.IsClaimed {
			stats.ClaimedLeads++
		} else {
			stats.UnclaimedLeads++
		}
		if !l.CreatedAt.Before(weekAgo) {
			stats.WeeklyLeads++
		}
		if !l.CreatedAt.Before(monthStart) {
			stats.MonthlyLeads++
		}
	}
	return stats, nil
}

func (s *Local) GetSetting(ctx context.Context, key string) (*CompanySetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.state.Settings {
		if st.SettingKey == key {
			out := *st
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Local) SetSetting(ctx context.Context, key, value string) (*CompanySetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.state.Settings {
		if st.SettingKey == key {
			st.SettingValue = value
			st.UpdatedAt = time.Now()
			if err := s.persist(); err != nil {
				return nil, err
			}
			out := *st
			return &out, nil
		}
	}

	s.state.NextSettingID++
	setting := &CompanySetting{
		ID:           s.state.NextSettingID,
		SettingKey:   key,
		SettingValue: value,
		UpdatedAt:    time.Now(),
	}
	s.state.Settings = append(s.state.Settings, setting)
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := *setting
	return &out, nil
}

func (s *Local) ListSettings(ctx context.Context) ([]*CompanySetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := make([]*CompanySetting, len(s.state.Settings))
	copy(settings, s.state.Settings)
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].SettingKey < settings[j].SettingKey
	})
	return settings, nil
}

func (s *Local) findAgent(id uint) *FieldAgent {
	for _, a := range s.state.Agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Local) findLead(id uint) *Lead {
	for _, l := range s.state.Leads {
		if l.ID == id {
			return l
		}
	}
	return nil
}
