package repository

import (
	"context"
	"time"

	"intraportal/internal/domain"

	"gorm.io/gorm"
)

type ExchangeRepository struct {
	db *gorm.DB
}

func NewExchangeRepository(db *gorm.DB) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

type proteinExchangeModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	UserID      int64     `gorm:"column:user_id;index"`
	UserName    string    `gorm:"column:user_name"`
	Date        time.Time `gorm:"column:date;index"`
	Meal        string    `gorm:"column:meal"`
	FromProtein string    `gorm:"column:from_protein"`
	ToProtein   string    `gorm:"column:to_protein"`
	Reason      *string   `gorm:"column:reason"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (proteinExchangeModel) TableName() string { return "protein_exchanges" }

func toDomainExchange(m proteinExchangeModel) domain.ProteinExchange {
	e := domain.ProteinExchange{
		ID:          m.ID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		Date:        m.Date,
		Meal:        domain.Meal(m.Meal),
		FromProtein: m.FromProtein,
		ToProtein:   m.ToProtein,
		CreatedAt:   m.CreatedAt,
	}
	if m.Reason != nil {
		e.Reason = *m.Reason
	}
	return e
}

func (r *ExchangeRepository) Create(ctx context.Context, e *domain.ProteinExchange) error {
	m := proteinExchangeModel{
		UserID:      e.UserID,
		UserName:    e.UserName,
		Date:        e.Date,
		Meal:        string(e.Meal),
		FromProtein: e.FromProtein,
		ToProtein:   e.ToProtein,
	}
	if e.Reason != "" {
		v := e.Reason
		m.Reason = &v
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*e = toDomainExchange(m)
	return nil
}

// ListByUserMonth returns the user's exchanges inside one calendar month,
// oldest first.
func (r *ExchangeRepository) ListByUserMonth(ctx context.Context, userID int64, year int, month time.Month) ([]domain.ProteinExchange, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var ms []proteinExchangeModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("date ASC").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ProteinExchange, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainExchange(m))
	}
	return out, nil
}
