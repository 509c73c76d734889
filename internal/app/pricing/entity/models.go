package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role - роль пользователя в системе
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleSalesManager Role = "sales_manager"
	RoleSalesRep     Role = "sales_rep"
)

// Valid проверяет, что роль является одной из известных
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSalesManager, RoleSalesRep:
		return true
	}
	return false
}

// User представляет пользователя в системе
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // не возвращаем в JSON
	FullName     string    `json:"full_name" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:text;not null;default:'sales_rep'"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// Competitor представляет отслеживаемого конкурента
type Competitor struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Competitor) TableName() string { return "competitors" }

// Product представляет отслеживаемый товар
type Product struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string           `json:"name" gorm:"not null"`
	Category    string           `json:"category" gorm:"not null"`
	Description string           `json:"description,omitempty"`
	OurPrice    *decimal.Decimal `json:"our_price,omitempty" gorm:"type:decimal(10,2)"` // наша цена для сравнения
	Currency    string           `json:"currency" gorm:"not null;default:'USD'"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (Product) TableName() string { return "products" }

// CompetitorPricing - текущая наблюдаемая цена конкурента на товар.
// Инвариант: не более одной записи на пару (competitor_id, product_id),
// обеспечивается уникальным индексом idx_pricing_pair.
type CompetitorPricing struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	CompetitorID uuid.UUID       `json:"competitor_id" gorm:"type:uuid;not null;uniqueIndex:idx_pricing_pair"`
	ProductID    uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_pricing_pair"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Currency     string          `json:"currency" gorm:"not null;default:'USD'"`
	Notes        string          `json:"notes,omitempty"`
	UpdatedBy    uuid.UUID       `json:"updated_by" gorm:"type:uuid;not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Competitor    *Competitor `json:"-" gorm:"foreignKey:CompetitorID;constraint:OnDelete:CASCADE"`
	Product       *Product    `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	UpdatedByUser *User       `json:"-" gorm:"foreignKey:UpdatedBy"`
}

func (CompetitorPricing) TableName() string { return "competitor_pricing" }

// PriceHistory - неизменяемая запись одного изменения цены.
// Записи только добавляются, операций обновления и удаления нет;
// при удалении ценовой записи история удаляется каскадно.
type PriceHistory struct {
	ID                  uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	CompetitorPricingID uuid.UUID        `json:"competitor_pricing_id" gorm:"type:uuid;not null;index"`
	OldPrice            decimal.Decimal  `json:"old_price" gorm:"type:decimal(10,2);not null"`
	NewPrice            decimal.Decimal  `json:"new_price" gorm:"type:decimal(10,2);not null"`
	ChangePercentage    *decimal.Decimal `json:"change_percentage" gorm:"type:decimal(5,2)"` // NULL, если старая цена была 0.00
	UpdatedBy           uuid.UUID        `json:"updated_by" gorm:"type:uuid;not null"`
	CreatedAt           time.Time        `json:"created_at"`

	CompetitorPricing *CompetitorPricing `json:"-" gorm:"foreignKey:CompetitorPricingID;constraint:OnDelete:CASCADE"`
	UpdatedByUser     *User              `json:"-" gorm:"foreignKey:UpdatedBy"`
}

func (PriceHistory) TableName() string { return "price_history" }

// PricingWithRelations содержит ценовую запись с данными для отображения
type PricingWithRelations struct {
	CompetitorPricing
	Competitor    Competitor `json:"competitor"`
	Product       Product    `json:"product"`
	UpdatedByUser User       `json:"updated_by_user"`
}

// HistoryWithUser содержит запись истории с автором изменения
type HistoryWithUser struct {
	PriceHistory
	UpdatedByUser User `json:"updated_by_user"`
}

// PricingEvent представляет событие изменения цены для Kafka
type PricingEvent struct {
	EventType        string           `json:"event_type"` // PRICE_CHANGED
	PricingID        uuid.UUID        `json:"pricing_id"`
	CompetitorID     uuid.UUID        `json:"competitor_id"`
	ProductID        uuid.UUID        `json:"product_id"`
	OldPrice         decimal.Decimal  `json:"old_price"`
	NewPrice         decimal.Decimal  `json:"new_price"`
	ChangePercentage *decimal.Decimal `json:"change_percentage"`
	UpdatedBy        uuid.UUID        `json:"updated_by"`
	Timestamp        time.Time        `json:"timestamp"`
}
