package parcelrepo

import (
	"context"
	"errors"
	"fmt"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects saved aggregates so their domain events reach the outbox.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Migrate creates the parcels table together with the courier exclusivity index.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ParcelDTO{}); err != nil {
		return err
	}
	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON parcels (courier_id) WHERE status IN ('%s', '%s')`,
		activeCourierIndex, parcel.StatusPickedUp, parcel.StatusInTransit,
	)).Error
}

func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return writeError(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column, zero values included.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ParcelDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return writeError(result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) Delete(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Where("id = ?", aggregate.ID().Bytes()).Delete(&ParcelDTO{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads the parcel with SELECT ... FOR UPDATE.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormParcelRepository) get(db *gorm.DB, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*parcel.Parcel, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	active := make([]string, 0, 2)
	for _, s := range parcel.ActiveStatuses() {
		active = append(active, s.String())
	}

	var dtos []ParcelDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status IN ?", courierID.Bytes(), active).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

func (r *GormParcelRepository) ExistsByReference(ctx context.Context, reference parcel.Reference) (bool, error) {
	if err := reference.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ParcelDTO{}).
		Where("reference = ?", reference.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// writeError turns unique violations into conflicts.
func writeError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return err
	}

	switch pqErr.Constraint {
	case activeCourierIndex:
		return errs.NewConflictErrorWithCause("courier", "courier already carries an active parcel", err)
	case referenceIndex:
		return errs.NewConflictErrorWithCause("parcel", "reference already exists", err)
	default:
		return errs.NewConflictErrorWithCause("parcel", pqErr.Message, err)
	}
}
