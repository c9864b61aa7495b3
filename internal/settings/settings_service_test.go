package settings_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-crm/internal/settings"
	settingserrors "go-crm/internal/settings/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepo struct {
	findSettingFn func(ctx context.Context, companyID, key string) (*settings.SystemSetting, error)
	upsertFn      func(ctx context.Context, setting *settings.SystemSetting) error
	findPrefFn    func(ctx context.Context, companyID string, employeeID uuid.UUID, tableKey string) (*settings.TablePreference, error)
	upsertPrefFn  func(ctx context.Context, pref *settings.TablePreference) error
}

func (f *fakeSettingsRepo) FindSetting(ctx context.Context, companyID, key string) (*settings.SystemSetting, error) {
	return f.findSettingFn(ctx, companyID, key)
}
func (f *fakeSettingsRepo) UpsertSetting(ctx context.Context, setting *settings.SystemSetting) error {
	return f.upsertFn(ctx, setting)
}
func (f *fakeSettingsRepo) FindTablePreference(ctx context.Context, companyID string, employeeID uuid.UUID, tableKey string) (*settings.TablePreference, error) {
	return f.findPrefFn(ctx, companyID, employeeID, tableKey)
}
func (f *fakeSettingsRepo) UpsertTablePreference(ctx context.Context, pref *settings.TablePreference) error {
	return f.upsertPrefFn(ctx, pref)
}

func TestSettingsService_GetSetting(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("cache miss hits repo then caches", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		calls := 0
		repo := &fakeSettingsRepo{
			findSettingFn: func(ctx context.Context, cid, key string) (*settings.SystemSetting, error) {
				calls++
				return &settings.SystemSetting{
					ID:        uuid.New(),
					CompanyID: uuid.MustParse(companyID),
					Key:       "work_hours",
					Value:     json.RawMessage(`{"start":"09:30"}`),
				}, nil
			},
		}
		svc := settings.NewService(repo, rdb)

		key := settings.GetSettingCacheKey(companyID, "work_hours")
		redisMock.ExpectGet(key).RedisNil()
		redisMock.Regexp().ExpectSet(key, `.*`, time.Hour).SetVal("OK")

		resp, err := svc.GetSetting(ctx, companyID, "work_hours")
		assert.NoError(t, err)
		assert.Equal(t, "work_hours", resp.Key)
		assert.JSONEq(t, `{"start":"09:30"}`, string(resp.Value))
		assert.Equal(t, 1, calls)
	})

	t.Run("cache hit skips repo", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		cached, _ := json.Marshal(settings.SettingResponse{
			Key:   "theme",
			Value: json.RawMessage(`{"mode":"dark"}`),
		})
		key := settings.GetSettingCacheKey(companyID, "theme")
		redisMock.ExpectGet(key).SetVal(string(cached))

		svc := settings.NewService(&fakeSettingsRepo{}, rdb)

		resp, err := svc.GetSetting(ctx, companyID, "theme")
		assert.NoError(t, err)
		assert.JSONEq(t, `{"mode":"dark"}`, string(resp.Value))
	})

	t.Run("missing setting maps to not found", func(t *testing.T) {
		repo := &fakeSettingsRepo{
			findSettingFn: func(ctx context.Context, cid, key string) (*settings.SystemSetting, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := settings.NewService(repo, nil)

		_, err := svc.GetSetting(ctx, companyID, "missing")
		assert.ErrorIs(t, err, settingserrors.ErrSettingNotFound)
	})
}

func TestSettingsService_UpsertSetting(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("persists value and invalidates cache", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		var saved *settings.SystemSetting
		repo := &fakeSettingsRepo{
			upsertFn: func(ctx context.Context, setting *settings.SystemSetting) error {
				saved = setting
				return nil
			},
		}
		svc := settings.NewService(repo, rdb)

		redisMock.ExpectDel(settings.GetSettingCacheKey(companyID, "work_hours")).SetVal(1)

		resp, err := svc.UpsertSetting(ctx, companyID, "work_hours", settings.UpsertSettingRequest{
			Value: json.RawMessage(`{"start":"10:00","grace_minutes":15}`),
		})

		assert.NoError(t, err)
		assert.Equal(t, "work_hours", resp.Key)
		if assert.NotNil(t, saved) {
			assert.Equal(t, companyID, saved.CompanyID.String())
		}
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		svc := settings.NewService(&fakeSettingsRepo{}, nil)

		_, err := svc.UpsertSetting(ctx, companyID, "broken", settings.UpsertSettingRequest{
			Value: json.RawMessage(`{"unterminated":`),
		})
		assert.ErrorIs(t, err, settingserrors.ErrInvalidSettingValue)
	})
}

func TestSettingsService_TablePreference(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	emplID := uuid.New()

	t.Run("upsert then shape of response", func(t *testing.T) {
		var saved *settings.TablePreference
		repo := &fakeSettingsRepo{
			upsertPrefFn: func(ctx context.Context, pref *settings.TablePreference) error {
				saved = pref
				return nil
			},
		}
		svc := settings.NewService(repo, nil)

		resp, err := svc.UpsertTablePreference(ctx, companyID, emplID.String(), "leads", settings.UpsertTablePreferenceRequest{
			VisibleColumns: []string{"name", "stage", "deal_amount"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "leads", resp.TableKey)
		assert.Equal(t, []string{"name", "stage", "deal_amount"}, resp.VisibleColumns)
		if assert.NotNil(t, saved) {
			assert.Equal(t, emplID, saved.EmployeeID)
		}
	})

	t.Run("missing preference maps to not found", func(t *testing.T) {
		repo := &fakeSettingsRepo{
			findPrefFn: func(ctx context.Context, cid string, employeeID uuid.UUID, tableKey string) (*settings.TablePreference, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc := settings.NewService(repo, nil)

		_, err := svc.GetTablePreference(ctx, companyID, emplID.String(), "leads")
		assert.ErrorIs(t, err, settingserrors.ErrPreferenceNotFound)
	})

	t.Run("invalid employee id maps to not found", func(t *testing.T) {
		svc := settings.NewService(&fakeSettingsRepo{}, nil)
		_, err := svc.GetTablePreference(ctx, companyID, "not-a-uuid", "leads")
		assert.ErrorIs(t, err, settingserrors.ErrPreferenceNotFound)
	})
}
