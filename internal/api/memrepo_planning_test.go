package api

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/terra-clan/talent-tracker/internal/models"
	"github.com/terra-clan/talent-tracker/internal/storage"
)

func (m *memRepo) CreateRecommendations(_ context.Context, recs []*models.SkillRecommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	for _, rec := range recs {
		stamp(&rec.ID, &rec.CreatedAt)
		cp := *rec
		m.recommendations[rec.ID] = &cp
	}
	return nil
}

func (m *memRepo) ListOpenRecommendations(_ context.Context, userID uuid.UUID) ([]*models.SkillRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := []*models.SkillRecommendation{}
	for _, rec := range m.recommendations {
		if rec.UserID == userID && !rec.Completed {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out, nil
}

func (m *memRepo) CompleteRecommendation(_ context.Context, userID, id uuid.UUID) (*models.SkillRecommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	rec, ok := m.recommendations[id]
	if !ok || rec.UserID != userID {
		return nil, storage.ErrNotFound
	}
	rec.Completed = true
	cp := *rec
	return &cp, nil
}

func (m *memRepo) ListLearningModules(_ context.Context, userID uuid.UUID) ([]*models.LearningModule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := []*models.LearningModule{}
	for _, mod := range m.modules {
		if mod.UserID != userID {
			continue
		}
		cp := *mod
		cp.Items = []*models.LearningItem{}
		for _, it := range m.items {
			if it.ModuleID == mod.ID {
				item := *it
				cp.Items = append(cp.Items, &item)
			}
		}
		sort.Slice(cp.Items, func(i, j int) bool { return cp.Items[i].Position < cp.Items[j].Position })
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memRepo) CreateLearningModule(_ context.Context, mod *models.LearningModule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	stamp(&mod.ID, &mod.CreatedAt)
	mod.Position = 0
	for _, other := range m.modules {
		if other.UserID == mod.UserID && other.Position >= mod.Position {
			mod.Position = other.Position + 1
		}
	}
	mod.Items = []*models.LearningItem{}
	cp := *mod
	m.modules[mod.ID] = &cp
	return nil
}

func (m *memRepo) DeleteLearningModule(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	mod, ok := m.modules[id]
	if !ok || mod.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.modules, id)
	for itemID, it := range m.items {
		if it.ModuleID == id {
			delete(m.items, itemID)
		}
	}
	return nil
}

func (m *memRepo) CreateLearningItem(_ context.Context, it *models.LearningItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	mod, ok := m.modules[it.ModuleID]
	if !ok || mod.UserID != it.UserID {
		return storage.ErrNotFound
	}
	stamp(&it.ID, &it.CreatedAt)
	it.Position = 0
	for _, other := range m.items {
		if other.ModuleID == it.ModuleID && other.Position >= it.Position {
			it.Position = other.Position + 1
		}
	}
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memRepo) ToggleLearningItem(_ context.Context, userID, id uuid.UUID) (*models.LearningItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	it, ok := m.items[id]
	if !ok || it.UserID != userID {
		return nil, storage.ErrNotFound
	}
	it.Completed = !it.Completed
	cp := *it
	return &cp, nil
}

func (m *memRepo) DeleteLearningItem(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	it, ok := m.items[id]
	if !ok || it.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) ListCareerPaths(_ context.Context, userID uuid.UUID) ([]*models.CareerPath, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := []*models.CareerPath{}
	for _, p := range m.paths {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) CreateCareerPath(_ context.Context, p *models.CareerPath) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	stamp(&p.ID, &p.CreatedAt)
	cp := *p
	m.paths[p.ID] = &cp
	return nil
}

func (m *memRepo) DeleteCareerPath(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	p, ok := m.paths[id]
	if !ok || p.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.paths, id)
	for msID, ms := range m.milestones {
		if ms.CareerPathID == id {
			delete(m.milestones, msID)
		}
	}
	return nil
}

func (m *memRepo) ListMilestones(_ context.Context, userID, pathID uuid.UUID) ([]*models.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	p, ok := m.paths[pathID]
	if !ok || p.UserID != userID {
		return nil, storage.ErrNotFound
	}
	out := []*models.Milestone{}
	for _, ms := range m.milestones {
		if ms.CareerPathID == pathID {
			cp := *ms
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memRepo) CreateMilestone(_ context.Context, ms *models.Milestone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	p, ok := m.paths[ms.CareerPathID]
	if !ok || p.UserID != ms.UserID {
		return storage.ErrNotFound
	}
	stamp(&ms.ID, &ms.CreatedAt)
	ms.Position = 0
	for _, other := range m.milestones {
		if other.CareerPathID == ms.CareerPathID && other.Position >= ms.Position {
			ms.Position = other.Position + 1
		}
	}
	cp := *ms
	m.milestones[ms.ID] = &cp
	return nil
}

func (m *memRepo) ToggleMilestone(_ context.Context, userID, id uuid.UUID) (*models.Milestone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	ms, ok := m.milestones[id]
	if !ok || ms.UserID != userID {
		return nil, storage.ErrNotFound
	}
	ms.Completed = !ms.Completed
	cp := *ms
	return &cp, nil
}

func (m *memRepo) DeleteMilestone(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	ms, ok := m.milestones[id]
	if !ok || ms.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.milestones, id)
	return nil
}

func (m *memRepo) ListResources(_ context.Context, query string) ([]*models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := []*models.Resource{}
	for _, res := range m.resources {
		if res.Matches(query) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (m *memRepo) resource(id uuid.UUID) *models.Resource {
	for _, res := range m.resources {
		if res.ID == id {
			return res
		}
	}
	return nil
}

func (m *memRepo) SaveResource(_ context.Context, sr *models.SavedResource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	res := m.resource(sr.ResourceID)
	if res == nil {
		return storage.ErrNotFound
	}
	for _, other := range m.saved {
		if other.UserID == sr.UserID && other.ResourceID == sr.ResourceID {
			return storage.ErrConflict
		}
	}
	stamp(&sr.ID, &sr.CreatedAt)
	sr.Resource = res
	cp := *sr
	m.saved[sr.ID] = &cp
	return nil
}

func (m *memRepo) ListLibrary(_ context.Context, userID uuid.UUID, query string) ([]*models.SavedResource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return nil, err
	}
	out := []*models.SavedResource{}
	for _, sr := range m.saved {
		if sr.UserID == userID && sr.Resource.Matches(query) {
			cp := *sr
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) DeleteSavedResource(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter(); err != nil {
		return err
	}
	sr, ok := m.saved[id]
	if !ok || sr.UserID != userID {
		return storage.ErrNotFound
	}
	delete(m.saved, id)
	return nil
}
