package repository

import (
	"eklerchik/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteSettingRepository interface {
	FindAll() (map[string]string, error)
	Upsert(settings map[string]string) error
}

type siteSettingRepository struct {
	db *gorm.DB
}

func NewSiteSettingRepository(db *gorm.DB) SiteSettingRepository {
	return &siteSettingRepository{db: db}
}

func (r *siteSettingRepository) FindAll() (map[string]string, error) {
	var rows []models.SiteSetting
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}
	return settings, nil
}

func (r *siteSettingRepository) Upsert(settings map[string]string) error {
	if len(settings) == 0 {
		return nil
	}
	rows := make([]models.SiteSetting, 0, len(settings))
	for k, v := range settings {
		rows = append(rows, models.SiteSetting{Key: k, Value: v})
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
}
