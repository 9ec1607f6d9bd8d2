package repository

import (
	"context"

	"github.com/samber/lo"
	"github.com/yz4230/asgard-console/internal/entity"
	"gorm.io/gorm"
)

type DeploymentRepository interface {
	Create(ctx context.Context, rec *entity.DeploymentRecord) (*entity.DeploymentRecord, error)
	GetByID(ctx context.Context, id entity.ID) (*entity.DeploymentRecord, error)
	GetByDeploymentID(ctx context.Context, deploymentID string) (*entity.DeploymentRecord, error)
	List(ctx context.Context) ([]*entity.DeploymentRecord, error)
	ListByCluster(ctx context.Context, clusterName string) ([]*entity.DeploymentRecord, error)
	Update(ctx context.Context, rec *entity.DeploymentRecord) (*entity.DeploymentRecord, error)
}

type deploymentRepositoryImpl struct {
	db *gorm.DB
}

func NewDeploymentRepository(db *gorm.DB) DeploymentRepository {
	return &deploymentRepositoryImpl{db: db}
}

// Create a new history record. The server's deployment id is unique.
func (r *deploymentRepositoryImpl) Create(ctx context.Context, rec *entity.DeploymentRecord) (*entity.DeploymentRecord, error) {
	var model Deployment
	model.FromEntity(rec)
	if err := gorm.G[Deployment](r.db).Create(ctx, &model); err != nil {
		return nil, translate(err)
	}
	return model.ToEntity(), nil
}

// GetByID finds a record by its local id.
func (r *deploymentRepositoryImpl) GetByID(ctx context.Context, id entity.ID) (*entity.DeploymentRecord, error) {
	found, err := gorm.G[Deployment](r.db).Where("id = ?", id.Uint()).First(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return found.ToEntity(), nil
}

// GetByDeploymentID finds a record by the id the server handed out.
func (r *deploymentRepositoryImpl) GetByDeploymentID(ctx context.Context, deploymentID string) (*entity.DeploymentRecord, error) {
	found, err := gorm.G[Deployment](r.db).Where("deployment_id = ?", deploymentID).First(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return found.ToEntity(), nil
}

// List returns all records, newest first.
func (r *deploymentRepositoryImpl) List(ctx context.Context) ([]*entity.DeploymentRecord, error) {
	founds, err := gorm.G[Deployment](r.db).Order("id desc").Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(f Deployment, _ int) *entity.DeploymentRecord { return f.ToEntity() }), nil
}

// ListByCluster lists the records of one cluster, newest first.
func (r *deploymentRepositoryImpl) ListByCluster(ctx context.Context, clusterName string) ([]*entity.DeploymentRecord, error) {
	founds, err := gorm.G[Deployment](r.db).Where("cluster_name = ?", clusterName).Order("id desc").Find(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return lo.Map(founds, func(f Deployment, _ int) *entity.DeploymentRecord { return f.ToEntity() }), nil
}

// Update stores the last observed status of a record.
func (r *deploymentRepositoryImpl) Update(ctx context.Context, rec *entity.DeploymentRecord) (*entity.DeploymentRecord, error) {
	var model Deployment
	model.FromEntity(rec)
	n, err := gorm.G[Deployment](r.db).
		Where("id = ?", rec.ID.Uint()).
		Select("status", "done").
		Updates(ctx, model)
	if err != nil {
		return nil, translate(err)
	}
	if n == 0 {
		return nil, translate(ErrNotFound)
	}
	return r.GetByID(ctx, rec.ID)
}
