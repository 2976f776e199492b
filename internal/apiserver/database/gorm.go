package database

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements the Store interface on top of a GORM connection.
// The sqlite, mysql and postgres constructors all share it; only the
// dialector differs.
type GormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&SystemUser{}, &FieldAgent{}, &Lead{}, &CompanySetting{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Close closes the database connection
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) CreateAgent(ctx context.Context, agent *FieldAgent) error {
	agent.IsActive = true
	return s.db.WithContext(ctx).Create(agent).Error
}

func (s *GormStore) ListAgents(ctx context.Context, filter AgentFilter) ([]*FieldAgent, error) {
	q := s.db.WithContext(ctx).
		Model(&FieldAgent{}).
		Where("is_active = ?", true)

	if filter.Location != "" {
		q = q.Where("LOWER(agent_location) LIKE ?", "%"+strings.ToLower(filter.Location)+"%")
	} else if filter.StartDate != nil && filter.EndDate != nil {
		q = q.Where("created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	}

	var agents []*FieldAgent
	err := q.Order("created_at DESC, id DESC").Find(&agents).Error
	return agents, err
}

func (s *GormStore) GetAgentWithLeadCounts(ctx context.Context, id uint) (*AgentWithLeadCounts, error) {
	var row AgentWithLeadCounts
	err := s.db.WithContext(ctx).
		Model(&FieldAgent{}).
		Select("field_agents.*, "+
			"COUNT(leads.id) AS total_leads, "+
			"COUNT(CASE WHEN leads.is_claimed = ? THEN 1 END) AS claimed_leads, "+
			"COUNT(CASE WHEN leads.is_claimed = ? THEN 1 END) AS unclaimed_leads", true, false).
		Joins("LEFT JOIN leads ON leads.agent_id = field_agents.id").
		Where("field_agents.id = ? AND field_agents.is_active = ?", id, true).
		Group("field_agents.id").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) ListAgentLocations(ctx context.Context) ([]*LocationCount, error) {
	var rows []*LocationCount
	err := s.db.WithContext(ctx).
		Model(&FieldAgent{}).
		Select("agent_location, COUNT(*) AS agent_count").
		Where("is_active = ? AND agent_location <> ''", true).
		Group("agent_location").
		Order("agent_count DESC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) SoftDeleteAgent(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&FieldAgent{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateLead(ctx context.Context, lead *Lead) error {
	lead.IsClaimed = false
	lead.ClaimedBy = nil
	lead.ClaimedAt = nil
	return s.db.WithContext(ctx).Create(lead).Error
}

func (s *GormStore) ListLeads(ctx context.Context, filter LeadFilter) ([]*LeadWithAgent, error) {
	q := s.db.WithContext(ctx).
		Model(&Lead{}).
		Select("leads.*, field_agents.full_name AS agent_name, field_agents.agent_location AS agent_location").
		Joins("LEFT JOIN field_agents ON field_agents.id = leads.agent_id")

	order := "leads.created_at DESC, leads.id DESC"
	switch {
	case filter.Search != "":
		term := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(leads.client_full_name) LIKE ? OR LOWER(leads.client_contact_1) LIKE ? OR LOWER(leads.client_contact_2) LIKE ?",
			term, term, term)
	case filter.StartDate != nil && filter.EndDate != nil:
		q = q.Where("leads.created_at BETWEEN ? AND ?", *filter.StartDate, *filter.EndDate)
	case filter.AgentID != 0:
		q = q.Where("leads.agent_id = ?", filter.AgentID)
	case filter.ClaimedOnly:
		q = q.Where("leads.is_claimed = ?", true)
		order = "leads.claimed_at DESC"
	}

	var rows []*LeadWithAgent
	err := q.Order(order).Find(&rows).Error
	return rows, err
}

func (s *GormStore) ClaimLead(ctx context.Context, id uint, claimedBy string) (*Lead, error) {
	if strings.TrimSpace(claimedBy) == "" {
		return nil, ErrEmptyClaimant
	}

	// Conditional write: only an unclaimed lead can be claimed, so two
	// racing claims cannot both succeed.
	res := s.db.WithContext(ctx).
		Model(&Lead{}).
		Where("id = ? AND is_claimed = ?", id, false).
		Updates(map[string]interface{}{
			"is_claimed": true,
			"claimed_by": claimedBy,
			"claimed_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var lead Lead
		err := s.db.WithContext(ctx).Take(&lead, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrLeadClaimed
	}

	var lead Lead
	if err := s.db.WithContext(ctx).Take(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *GormStore) ReverseClaim(ctx context.Context, id uint) (*Lead, error) {
	var lead Lead
	err := s.db.WithContext(ctx).Take(&lead, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(&Lead{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_claimed": false,
			"claimed_by": nil,
			"claimed_at": nil,
		}).Error
	if err != nil {
		return nil, err
	}

	// Re-read into a fresh struct; scanning NULLs into the previously
	// populated one would leave the old claim pointers in place.
	var updated Lead
	if err := s.db.WithContext(ctx).Take(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *GormStore) DeleteLead(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&Lead{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *SystemUser) error {
	user.IsActive = true
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *GormStore) ListUsers(ctx context.Context) ([]*SystemUser, error) {
	var users []*SystemUser
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&users).Error
	return users, err
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*SystemUser, error) {
	var user SystemUser
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) GetUserByID(ctx context.Context, id uint) (*SystemUser, error) {
	var user SystemUser
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, user *SystemUser) error {
	err := s.db.WithContext(ctx).Save(user).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *GormStore) SoftDeleteUser(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&SystemUser{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetDashboardStats issues the six aggregate counts concurrently; they
// read disjoint aggregates so ordering between them is irrelevant.
func (s *GormStore) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &DashboardStats{}
	counts := []struct {
		dst   *int64
		query func(*gorm.DB) *gorm.DB
	}{
		{&stats.TotalAgents, func(db *gorm.DB) *gorm.DB {
			return db.Model(&FieldAgent{}).Where("is_active = ?", true)
		}},
		{&stats.TotalLeads, func(db *gorm.DB) *gorm.DB {
			return db.Model(&Lead{})
		}},
		{&stats.ClaimedLeads, func(db *gorm.DB) *gorm.DB {
			return db.Model(&Lead{}).Where("is_claimed = ?", true)
		}},
		{&stats.UnclaimedLeads, func(db *gorm.DB) *gorm.DB {
			return db.Model(&Lead{}).Where("is_claimed = ?", false)
		}},
		{&stats.WeeklyLeads, func(db *gorm.DB) *gorm.DB {
			return db.Model(&Lead{}).Where("created_at >= ?", weekAgo)
		}},
		{&stats.MonthlyLeads, func(db *gorm.DB) *gorm.DB {
			return db.Model(&Lead{}).Where("created_at >= ?", monthStart)
		}},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, c := range counts {
		wg.Add(1)
		go func(dst *int64, build func(*gorm.DB) *gorm.DB) {
			defer wg.Done()
			if err := build(s.db.WithContext(ctx)).Count(dst).Error; err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(c.dst, c.query)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

func (s *GormStore) GetSetting(ctx context.Context, key string) (*CompanySetting, error) {
	var setting CompanySetting
	err := s.db.WithContext(ctx).
		Where("setting_key = ?", key).
		Take(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *GormStore) SetSetting(ctx context.Context, key, value string) (*CompanySetting, error) {
	setting := &CompanySetting{
		SettingKey:   key,
		SettingValue: value,
		UpdatedAt:    time.Now(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"setting_value": value,
				"updated_at":    time.Now(),
			}),
		}).
		Create(setting).Error
	if err != nil {
		return nil, err
	}
	return s.GetSetting(ctx, key)
}

func (s *GormStore) ListSettings(ctx context.Context) ([]*CompanySetting, error) {
	var settings []*CompanySetting
	err := s.db.WithContext(ctx).
		Order("setting_key ASC").
		Find(&settings).Error
	return settings, err
}

// isUniqueViolation matches unique-constraint failures across the three
// supported backends
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "unique constraint")
}
