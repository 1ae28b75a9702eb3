package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/storage"
)

const (
	citiesKey      = "weatherCities"
	activeIndexKey = "activeCityIndex"
)

// CityRepository persists the tracked location list and the active index
type CityRepository interface {
	Load(ctx context.Context) ([]model.LocationEntry, int, error)
	Save(ctx context.Context, entries []model.LocationEntry, activeIndex int) error
}

type cityRepository struct {
	kv     storage.KV
	prefix string
	logger *zap.SugaredLogger
}

// NewCityRepository stores city state in kv under the configured key prefix
func NewCityRepository(kv storage.KV, logger *zap.SugaredLogger) CityRepository {
	if logger == nil {
		logger = config.GetLogger()
	}
	return &cityRepository{
		kv:     kv,
		prefix: config.GetStorageKeyPrefix(),
		logger: logger,
	}
}

// Load never fails on malformed data: a missing or corrupt list reads as empty
// and a missing or corrupt index reads as 0. Backend errors are returned with empty state.
func (r *cityRepository) Load(ctx context.Context) ([]model.LocationEntry, int, error) {
	raw, err := r.kv.Get(ctx, r.prefix+citiesKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, 0, nil
	case err != nil:
		return nil, 0, fmt.Errorf("load cities: %w", err)
	}

	var entries []model.LocationEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		r.logger.Warnw("Discarding unreadable city list", "error", err)
		return nil, 0, nil
	}

	rawIndex, err := r.kv.Get(ctx, r.prefix+activeIndexKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return entries, 0, nil
	case err != nil:
		return entries, 0, fmt.Errorf("load active index: %w", err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil {
		r.logger.Warnw("Discarding unreadable active index", "value", rawIndex, "error", err)
		return entries, 0, nil
	}
	return entries, index, nil
}

func (r *cityRepository) Save(ctx context.Context, entries []model.LocationEntry, activeIndex int) error {
	if entries == nil {
		entries = []model.LocationEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, r.prefix+citiesKey, string(b)); err != nil {
		return fmt.Errorf("save cities: %w", err)
	}
	if err := r.kv.Set(ctx, r.prefix+activeIndexKey, strconv.Itoa(activeIndex)); err != nil {
		return fmt.Errorf("save active index: %w", err)
	}
	return nil
}
