// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: Offer, OfferFields, OfferFilter, OfferRepository
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// OfferStatus представляет статус оффера
type OfferStatus string

// Статусы оффера. Переход только active -> archived, физическое удаление не используется.
const (
	StatusActive   OfferStatus = "active"
	StatusArchived OfferStatus = "archived"
)

// GeoGlobal — регион по умолчанию для офферов без гео
const GeoGlobal = "Global"

// NotePlaceholder — заметка по умолчанию для офферов без описания
const NotePlaceholder = "-"

// Offer представляет оффер партнерской программы
type Offer struct {
	bun.BaseModel `bun:"table:offers,alias:o"`

	ID         int64       `bun:"id,pk,autoincrement" json:"id"`
	SourceName string      `bun:"source_name,notnull" json:"source_name"`
	OfferName  string      `bun:"offer_name,notnull" json:"offer_name"`
	Geo        string      `bun:"geo,notnull,default:'Global'" json:"geo"`
	Rate       string      `bun:"rate,notnull" json:"rate"`
	Guarantee  string      `bun:"guarantee,nullzero" json:"guarantee,omitempty"`
	Note       string      `bun:"note,notnull,default:'-'" json:"note"`
	Status     OfferStatus `bun:"status,notnull,default:'active'" json:"status"`
	CreatedAt  time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	OwnerID    int64       `bun:"owner_id,nullzero" json:"owner_id,omitempty"`
}

// IsArchived проверяет, находится ли оффер в архиве
func (o *Offer) IsArchived() bool {
	return o.Status == StatusArchived
}

// OwnedBy проверяет, принадлежит ли оффер пользователю
func (o *Offer) OwnedBy(userID int64) bool {
	return o.OwnerID != 0 && o.OwnerID == userID
}

// OfferFields содержит изменяемые поля оффера.
// owner_id, status и created_at через эту структуру не меняются.
type OfferFields struct {
	SourceName string
	OfferName  string
	Geo        string
	Rate       string
	Guarantee  string
	Note       string
}

// ApplyDefaults заполняет отсутствующие поля значениями по умолчанию
func (f *OfferFields) ApplyDefaults() {
	if f.Geo == "" {
		f.Geo = GeoGlobal
	}
	if f.Note == "" {
		f.Note = NotePlaceholder
	}
}

// OfferFilter описывает фильтр поиска по офферам.
// Keywords: группы вариантов по одному ключевому слову; группы объединяются
// через AND, варианты внутри группы — через OR по полям source/offer/geo.
type OfferFilter struct {
	Keywords        [][]string
	IncludeArchived bool
	OwnerID         int64
}

// OfferExportRow представляет строку выгрузки с именем владельца
type OfferExportRow struct {
	Offer `bun:",extend"`

	OwnerUsername string `bun:"owner_username,scanonly" json:"owner_username,omitempty"`
}

// OfferRepository определяет интерфейс для работы с офферами
type OfferRepository interface {
	Create(offer *Offer) error
	GetByID(id int64) (*Offer, error)
	UpdateFields(id int64, fields OfferFields) (bool, error)
	Archive(id int64) (*Offer, error)
	Search(filter OfferFilter) ([]Offer, error)
	SearchWithOwners(filter OfferFilter) ([]OfferExportRow, error)
}
