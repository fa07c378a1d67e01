package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tourquote/internal/domain"
	"tourquote/internal/modules/pricing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEstimateNotFound   = errors.New("estimate not found")
	ErrDuplicateReference = errors.New("estimate reference already exists")
)

type EstimateRepository struct {
	db *gorm.DB
}

func NewEstimateRepository(db *gorm.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

// estimateModel keeps the nested structures as JSON-encoded text columns;
// group, hotels, days, services and flights are denormalized on load.
type estimateModel struct {
	ID                   int64          `gorm:"column:id;primaryKey"`
	Reference            string         `gorm:"column:reference;uniqueIndex"`
	Name                 string         `gorm:"column:name"`
	Currency             string         `gorm:"column:currency"`
	Status               string         `gorm:"column:status"`
	GroupData            string         `gorm:"column:group_data"`
	HotelsData           string         `gorm:"column:hotels_data"`
	DaysData             string         `gorm:"column:days_data"`
	ServicesData         string         `gorm:"column:services_data"`
	FlightsData          string         `gorm:"column:flights_data"`
	GeneralMarkupPercent float64        `gorm:"column:general_markup_percent"`
	BaseTotal            float64        `gorm:"column:base_total"`
	GeneralMarkupAmount  float64        `gorm:"column:general_markup_amount"`
	FinalTotal           float64        `gorm:"column:final_total"`
	TotalsData           string         `gorm:"column:totals_data"`
	CreatedBy            int64          `gorm:"column:created_by"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
	PricedAt             *time.Time     `gorm:"column:priced_at"`
	DeletedAt            gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (estimateModel) TableName() string { return "estimates" }

// EstimateMigrationModel is exported for AutoMigrate wiring in cmd and tests.
func EstimateMigrationModel() any { return &estimateModel{} }

func toEstimateModel(e *domain.Estimate) (estimateModel, error) {
	m := estimateModel{
		ID:                   e.ID,
		Reference:            e.Reference,
		Name:                 e.Name,
		Currency:             e.Currency,
		Status:               string(e.Status),
		GeneralMarkupPercent: e.GeneralMarkupPercent,
		CreatedBy:            e.CreatedBy,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
		PricedAt:             e.PricedAt,
	}

	encode := func(v any, dst *string) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		*dst = string(data)
		return nil
	}

	if err := encode(e.Group, &m.GroupData); err != nil {
		return m, err
	}
	if err := encode(e.Hotels, &m.HotelsData); err != nil {
		return m, err
	}
	if err := encode(e.Days, &m.DaysData); err != nil {
		return m, err
	}
	if err := encode(e.OptionalServices, &m.ServicesData); err != nil {
		return m, err
	}
	if err := encode(e.Flights, &m.FlightsData); err != nil {
		return m, err
	}
	return m, nil
}

func toDomainEstimate(m estimateModel) (*domain.Estimate, error) {
	e := &domain.Estimate{
		ID:                   m.ID,
		Reference:            m.Reference,
		Name:                 m.Name,
		Currency:             m.Currency,
		Status:               domain.EstimateStatus(m.Status),
		GeneralMarkupPercent: m.GeneralMarkupPercent,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		PricedAt:             m.PricedAt,
	}

	decode := func(src string, dst any) error {
		if src == "" {
			return nil
		}
		return json.Unmarshal([]byte(src), dst)
	}

	if err := decode(m.GroupData, &e.Group); err != nil {
		return nil, err
	}
	if err := decode(m.HotelsData, &e.Hotels); err != nil {
		return nil, err
	}
	if err := decode(m.DaysData, &e.Days); err != nil {
		return nil, err
	}
	services, err := decodeServices(m.ServicesData)
	if err != nil {
		return nil, err
	}
	e.OptionalServices = services
	if err := decode(m.FlightsData, &e.Flights); err != nil {
		return nil, err
	}
	return e, nil
}

// decodeServices tolerates legacy service records where numeric fields were
// exported as strings ("30", "") instead of numbers.
func decodeServices(src string) ([]domain.OptionalService, error) {
	if src == "" {
		return nil, nil
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(src), &raw); err != nil {
		return nil, err
	}

	services := make([]domain.OptionalService, 0, len(raw))
	for _, item := range raw {
		name, _ := item["name"].(string)
		calcType, _ := item["calculation_type"].(string)
		services = append(services, domain.OptionalService{
			Name:            name,
			Price:           pricing.SafeNumber(item["price"], 0),
			Cost:            pricing.SafeNumber(item["cost"], 0),
			CalculationType: domain.CalculationType(calcType),
			MarkupPercent:   pricing.SafeNumber(item["markup_percent"], 0),
		})
	}
	return services, nil
}

func mapEstimateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEstimateNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateReference
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReference
	}
	return err
}

func (r *EstimateRepository) Create(ctx context.Context, e *domain.Estimate) error {
	m, err := toEstimateModel(e)
	if err != nil {
		return err
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapEstimateError(err)
	}

	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	e.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *EstimateRepository) GetByID(ctx context.Context, id int64) (*domain.Estimate, error) {
	var m estimateModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapEstimateError(err)
	}
	return toDomainEstimate(m)
}

func (r *EstimateRepository) GetByReference(ctx context.Context, reference string) (*domain.Estimate, error) {
	var m estimateModel
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&m).Error; err != nil {
		return nil, mapEstimateError(err)
	}
	return toDomainEstimate(m)
}

func (r *EstimateRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Estimate, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&estimateModel{}).Where("created_by = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []estimateModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	estimates := make([]domain.Estimate, 0, len(rows))
	for _, m := range rows {
		e, err := toDomainEstimate(m)
		if err != nil {
			return nil, 0, err
		}
		estimates = append(estimates, *e)
	}
	return estimates, total, nil
}

func (r *EstimateRepository) Update(ctx context.Context, e *domain.Estimate) error {
	m, err := toEstimateModel(e)
	if err != nil {
		return err
	}
	m.UpdatedAt = time.Now()

	res := r.db.WithContext(ctx).Model(&estimateModel{}).Where("id = ?", e.ID).Updates(map[string]any{
		"name":                   m.Name,
		"currency":               m.Currency,
		"status":                 m.Status,
		"group_data":             m.GroupData,
		"hotels_data":            m.HotelsData,
		"days_data":              m.DaysData,
		"services_data":          m.ServicesData,
		"flights_data":           m.FlightsData,
		"general_markup_percent": m.GeneralMarkupPercent,
		"updated_at":             m.UpdatedAt,
	})
	if res.Error != nil {
		return mapEstimateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEstimateNotFound
	}
	e.UpdatedAt = m.UpdatedAt
	return nil
}

// SaveTotals writes computed totals back onto the estimate record after a
// pricing pass.
func (r *EstimateRepository) SaveTotals(ctx context.Context, id int64, totals domain.EstimateTotals) error {
	data, err := json.Marshal(totals)
	if err != nil {
		return err
	}
	now := time.Now()

	res := r.db.WithContext(ctx).Model(&estimateModel{}).Where("id = ?", id).Updates(map[string]any{
		"status":                string(domain.EstimatePriced),
		"base_total":            totals.WithoutMarkup.BaseTotal,
		"general_markup_amount": totals.WithMarkup.GeneralMarkupAmount,
		"final_total":           totals.WithMarkup.FinalTotal,
		"totals_data":           string(data),
		"priced_at":             now,
		"updated_at":            now,
	})
	if res.Error != nil {
		return mapEstimateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEstimateNotFound
	}
	return nil
}

func (r *EstimateRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&estimateModel{}, id)
	if res.Error != nil {
		return mapEstimateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrEstimateNotFound
	}
	return nil
}
