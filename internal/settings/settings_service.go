package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	settingserrors "go-crm/internal/settings/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const SettingKeyPrefix = "settings:"

func GetSettingCacheKey(companyID, key string) string {
	return SettingKeyPrefix + companyID + ":" + key
}

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Service interface {
	GetSetting(ctx context.Context, companyID string, key string) (SettingResponse, error)
	UpsertSetting(ctx context.Context, companyID string, key string, req UpsertSettingRequest) (SettingResponse, error)
	GetTablePreference(ctx context.Context, companyID string, employeeID string, tableKey string) (TablePreferenceResponse, error)
	UpsertTablePreference(ctx context.Context, companyID string, employeeID string, tableKey string, req UpsertTablePreferenceRequest) (TablePreferenceResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetSetting(ctx context.Context, companyID string, key string) (SettingResponse, error) {
	cacheKey := GetSettingCacheKey(companyID, key)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp SettingResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight supaya cache stampede tidak menghantam DB
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		setting, err := s.repo.FindSetting(ctx, companyID, key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, settingserrors.ErrSettingNotFound
			}
			return nil, err
		}

		resp := mapSettingToResponse(*setting)

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return SettingResponse{}, err
	}

	return v.(SettingResponse), nil
}

func (s *service) UpsertSetting(ctx context.Context, companyID string, key string, req UpsertSettingRequest) (SettingResponse, error) {
	if !json.Valid(req.Value) {
		return SettingResponse{}, settingserrors.ErrInvalidSettingValue
	}

	setting := &SystemSetting{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		Key:       key,
		Value:     req.Value,
	}

	if err := s.repo.UpsertSetting(ctx, setting); err != nil {
		s.logger.Error("upsert setting failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return SettingResponse{}, err
	}

	s.invalidateSettingCache(ctx, companyID, key)

	s.logger.Info("upsert setting success",
		zap.String("company_id", companyID),
		zap.String("key", key),
	)
	return mapSettingToResponse(*setting), nil
}

func (s *service) GetTablePreference(ctx context.Context, companyID string, employeeID string, tableKey string) (TablePreferenceResponse, error) {
	emplID, err := uuid.Parse(employeeID)
	if err != nil {
		return TablePreferenceResponse{}, settingserrors.ErrPreferenceNotFound
	}

	pref, err := s.repo.FindTablePreference(ctx, companyID, emplID, tableKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TablePreferenceResponse{}, settingserrors.ErrPreferenceNotFound
		}
		return TablePreferenceResponse{}, err
	}
	return mapPreferenceToResponse(*pref), nil
}

func (s *service) UpsertTablePreference(ctx context.Context, companyID string, employeeID string, tableKey string, req UpsertTablePreferenceRequest) (TablePreferenceResponse, error) {
	emplID, err := uuid.Parse(employeeID)
	if err != nil {
		return TablePreferenceResponse{}, settingserrors.ErrPreferenceNotFound
	}

	pref := &TablePreference{
		ID:             uuid.New(),
		CompanyID:      uuid.MustParse(companyID),
		EmployeeID:     emplID,
		TableKey:       tableKey,
		VisibleColumns: req.VisibleColumns,
	}

	if err := s.repo.UpsertTablePreference(ctx, pref); err != nil {
		s.logger.Error("upsert table preference failed",
			zap.String("table_key", tableKey),
			zap.Error(err),
		)
		return TablePreferenceResponse{}, err
	}

	s.logger.Info("upsert table preference success",
		zap.String("employee_id", employeeID),
		zap.String("table_key", tableKey),
	)
	return mapPreferenceToResponse(*pref), nil
}

func (s *service) invalidateSettingCache(ctx context.Context, companyID, key string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetSettingCacheKey(companyID, key)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate setting cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapSettingToResponse(setting SystemSetting) SettingResponse {
	return SettingResponse{
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapPreferenceToResponse(pref TablePreference) TablePreferenceResponse {
	cols := pref.VisibleColumns
	if cols == nil {
		cols = []string{}
	}
	return TablePreferenceResponse{
		TableKey:       pref.TableKey,
		VisibleColumns: cols,
		UpdatedAt:      pref.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
