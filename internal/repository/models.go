package repository

import (
	"time"

	"github.com/yz4230/asgard-console/internal/entity"
	"gorm.io/gorm"
)

type Draft struct {
	gorm.Model
	ClusterName  string `gorm:"index"`
	TemplateName string
	Display      string
}

func (d *Draft) ToEntity() *entity.Draft {
	return &entity.Draft{
		ID:           entity.NewID(d.ID),
		ClusterName:  d.ClusterName,
		TemplateName: d.TemplateName,
		Display:      d.Display,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d *Draft) FromEntity(e *entity.Draft) {
	if e.ID != "" {
		d.ID = e.ID.Uint()
	}
	d.ClusterName = e.ClusterName
	d.TemplateName = e.TemplateName
	d.Display = e.Display
}

// Deployment is the local history entry of a deployment started from the console.
type Deployment struct {
	gorm.Model
	DeploymentID string `gorm:"uniqueIndex"`
	ClusterName  string `gorm:"index"`
	TemplateName string
	Status       string
	Done         bool
}

func (d *Deployment) ToEntity() *entity.DeploymentRecord {
	return &entity.DeploymentRecord{
		ID:           entity.NewID(d.ID),
		DeploymentID: d.DeploymentID,
		ClusterName:  d.ClusterName,
		TemplateName: d.TemplateName,
		Status:       entity.DeploymentStatus(d.Status),
		Done:         d.Done,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (d *Deployment) FromEntity(e *entity.DeploymentRecord) {
	if e.ID != "" {
		d.ID = e.ID.Uint()
	}
	d.DeploymentID = e.DeploymentID
	d.ClusterName = e.ClusterName
	d.TemplateName = e.TemplateName
	d.Status = string(e.Status)
	d.Done = e.Done
}

// CacheEntry is a cached JSON value keyed by name.
type CacheEntry struct {
	Key       string `gorm:"primaryKey;column:cache_key"`
	Value     []byte
	ExpiresAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}
