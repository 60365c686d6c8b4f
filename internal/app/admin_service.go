package app

import (
	"context"

	"showcase/internal/model"
	"showcase/internal/repository"
)

const recentActivityLimit = 20

type AdminService struct {
	schema   *repository.SchemaInspector
	activity *repository.ActivityRepository
}

func NewAdminService(schema *repository.SchemaInspector, activity *repository.ActivityRepository) *AdminService {
	return &AdminService{schema: schema, activity: activity}
}

// DescribeSchema reads the live schema on every call.
func (s *AdminService) DescribeSchema(ctx context.Context) ([]model.TableSchema, error) {
	return s.schema.Describe(ctx)
}

func (s *AdminService) RecentActivity(ctx context.Context) ([]model.ActivityEvent, error) {
	return s.activity.ListRecent(ctx, recentActivityLimit)
}
