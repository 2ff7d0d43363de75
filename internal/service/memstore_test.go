package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
)

// memStore - хранилище в памяти для сценарных тестов сервисов
type memStore struct {
	mu        sync.Mutex
	clock     time.Time
	users     []*models.User
	incidents []*models.Incident
	resources []*models.Resource
	alerts    []*models.Alert
	zones     []*models.Zone
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// tick возвращает строго возрастающее время
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memIncidents struct{ *memStore }
type memResources struct{ *memStore }
type memAlerts struct{ *memStore }
type memZones struct{ *memStore }
type memUsers struct{ *memStore }

func matchIncident(i *models.Incident, f models.IncidentFilter) bool {
	if f.Status != nil && i.Status != *f.Status {
		return false
	}
	if f.ReportedBy != nil && (i.ReportedBy == nil || *i.ReportedBy != *f.ReportedBy) {
		return false
	}
	return true
}

func (r memIncidents) Create(_ context.Context, incident *models.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	incident.ID = uuid.New()
	incident.Timestamp = r.tick()
	stored := *incident
	r.incidents = append(r.incidents, &stored)
	return nil
}

func (r memIncidents) GetByID(_ context.Context, id uuid.UUID) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.incidents {
		if i.ID == id {
			copied := *i
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("incident %s: %w", id, models.ErrNotFound)
}

func (r memIncidents) Find(_ context.Context, filter models.IncidentFilter, opts models.ListOptions) ([]*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Incident, 0)
	for _, i := range r.incidents {
		if matchIncident(i, filter) {
			copied := *i
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		if opts.Ascending {
			return result[a].Timestamp.Before(result[b].Timestamp)
		}
		return result[a].Timestamp.After(result[b].Timestamp)
	})
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (r memIncidents) FindWithReporters(ctx context.Context, opts models.ListOptions) ([]*models.IncidentWithReporter, error) {
	incidents, _ := r.Find(ctx, models.IncidentFilter{}, opts)
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.IncidentWithReporter, 0, len(incidents))
	for _, i := range incidents {
		row := &models.IncidentWithReporter{Incident: *i}
		for _, u := range r.users {
			if i.ReportedBy != nil && u.ID == *i.ReportedBy {
				row.Reporter = &models.Reporter{ID: u.ID, Name: u.Name, Email: u.Email}
			}
		}
		result = append(result, row)
	}
	return result, nil
}

func (r memIncidents) Count(ctx context.Context, filter models.IncidentFilter) (int, error) {
	incidents, _ := r.Find(ctx, filter, models.ListOptions{})
	return len(incidents), nil
}

func (r memIncidents) Update(_ context.Context, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.incidents {
		if i.ID != id {
			continue
		}
		if patch.Type != nil {
			i.Type = *patch.Type
		}
		if patch.Location != nil {
			i.Location = *patch.Location
		}
		if patch.Description != nil {
			i.Description = *patch.Description
		}
		if patch.Status != nil {
			i.Status = *patch.Status
		}
		if patch.Priority != nil {
			i.Priority = *patch.Priority
		}
		copied := *i
		return &copied, nil
	}
	return nil, fmt.Errorf("incident %s: %w", id, models.ErrNotFound)
}

func (r memResources) Create(_ context.Context, resource *models.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.resources {
		if existing.Type == resource.Type {
			return fmt.Errorf("resource type %q: %w", resource.Type, models.ErrConflict)
		}
	}
	resource.ID = uuid.New()
	resource.CreatedAt = r.tick()
	stored := *resource
	r.resources = append(r.resources, &stored)
	return nil
}

func (r memResources) CreateMany(ctx context.Context, resources []*models.Resource) (int, error) {
	inserted := 0
	for _, res := range resources {
		if err := r.Create(ctx, res); err == nil {
			inserted++
		}
	}
	return inserted, nil
}

func (r memResources) find(match func(*models.Resource) bool) (*models.Resource, error) {
	for _, res := range r.resources {
		if match(res) {
			return res, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memResources) GetByID(_ context.Context, id uuid.UUID) (*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.find(func(x *models.Resource) bool { return x.ID == id })
	if err != nil {
		return nil, err
	}
	copied := *res
	return &copied, nil
}

func (r memResources) GetByType(_ context.Context, resourceType string) (*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.find(func(x *models.Resource) bool { return x.Type == resourceType })
	if err != nil {
		return nil, err
	}
	copied := *res
	return &copied, nil
}

func (r memResources) List(context.Context) ([]*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		copied := *res
		result = append(result, &copied)
	}
	return result, nil
}

func (r memResources) Count(ctx context.Context) (int, error) {
	all, _ := r.List(ctx)
	return len(all), nil
}

func (r memResources) Update(_ context.Context, id uuid.UUID, patch models.ResourcePatch) (*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.find(func(x *models.Resource) bool { return x.ID == id })
	if err != nil {
		return nil, err
	}
	*res = patch.Apply(*res)
	copied := *res
	return &copied, nil
}

func (r memResources) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for idx, res := range r.resources {
		if res.ID == id {
			r.resources = append(r.resources[:idx], r.resources[idx+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (r memResources) Reserve(_ context.Context, resourceType string, n int) (*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.find(func(x *models.Resource) bool { return x.Type == resourceType })
	if err != nil {
		return nil, err
	}
	if res.Available < n {
		return nil, models.ErrInsufficientResources
	}
	res.Available -= n
	copied := *res
	return &copied, nil
}

func (r memResources) Release(_ context.Context, resourceType string, n int) (*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, err := r.find(func(x *models.Resource) bool { return x.Type == resourceType })
	if err != nil {
		return nil, err
	}
	if res.Available+n > res.Total {
		return nil, models.ErrInsufficientResources
	}
	res.Available += n
	copied := *res
	return &copied, nil
}

func (r memAlerts) Create(_ context.Context, alert *models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert.ID = uuid.New()
	alert.Timestamp = r.tick()
	stored := *alert
	r.alerts = append(r.alerts, &stored)
	return nil
}

func (r memAlerts) List(_ context.Context, filter models.AlertFilter) ([]*models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Alert, 0)
	for _, a := range r.alerts {
		if filter.Status == nil || a.Status == *filter.Status {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r memAlerts) Count(ctx context.Context, filter models.AlertFilter) (int, error) {
	all, _ := r.List(ctx, filter)
	return len(all), nil
}

func (r memAlerts) Update(context.Context, uuid.UUID, models.AlertPatch) (*models.Alert, error) {
	return nil, models.ErrNotFound
}

func (r memAlerts) Delete(context.Context, uuid.UUID) error {
	return models.ErrNotFound
}

func (r memZones) CreateMany(_ context.Context, zones []*models.Zone) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inserted := 0
	for _, z := range zones {
		duplicate := false
		for _, existing := range r.zones {
			duplicate = duplicate || existing.Name == z.Name
		}
		if duplicate {
			continue
		}
		z.ID = uuid.New()
		stored := *z
		r.zones = append(r.zones, &stored)
		inserted++
	}
	return inserted, nil
}

func (r memZones) List(context.Context) ([]*models.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Zone, 0, len(r.zones))
	for _, z := range r.zones {
		copied := *z
		result = append(result, &copied)
	}
	return result, nil
}

func (r memZones) Count(ctx context.Context) (int, error) {
	all, _ := r.List(ctx)
	return len(all), nil
}

func (r memZones) UpdateStatus(context.Context, uuid.UUID, models.ZoneStatus) (*models.Zone, error) {
	return nil, models.ErrNotFound
}

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("email %q: %w", user.Email, models.ErrConflict)
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = r.tick()
	stored := *user
	r.users = append(r.users, &stored)
	return nil
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r memUsers) List(context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (r memUsers) Count(ctx context.Context) (int, error) {
	all, _ := r.List(ctx)
	return len(all), nil
}

func (r memUsers) ExistsWithRole(_ context.Context, role models.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) UpdateRole(context.Context, uuid.UUID, models.Role) (*models.User, error) {
	return nil, models.ErrNotFound
}

func (r memUsers) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
