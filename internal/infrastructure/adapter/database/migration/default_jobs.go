package migration

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/model"
)

// defaultJobs seeds a starter set of salaried positions
var defaultJobs = []model.Job{
	{JobName: "Miner", Department: "Industry", ClassLevel: 1, DailyAmount: decimal.RequireFromString("120.000")},
	{JobName: "Farmer", Department: "Agriculture", ClassLevel: 1, DailyAmount: decimal.RequireFromString("100.000")},
	{JobName: "Courier", Department: "Logistics", ClassLevel: 1, DailyAmount: decimal.RequireFromString("90.000")},
}

// CreateDefaultJobs inserts the default jobs unless they already exist
func CreateDefaultJobs(ctx context.Context, db *gorm.DB, timeProvider coreport.TimeProvider) error {
	for _, job := range defaultJobs {
		var count int64
		if err := db.WithContext(ctx).Model(&model.Job{}).
			Where("job_name = ?", job.JobName).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		job.CreatedAt = timeProvider.Now()
		job.UpdatedAt = job.CreatedAt
		if err := db.WithContext(ctx).Create(&job).Error; err != nil {
			return err
		}
	}
	return nil
}
