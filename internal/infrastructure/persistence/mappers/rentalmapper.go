// Package mappers converts between domain aggregates and persistence
// models.
package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"rentra/internal/domain/rental"
	vo "rentra/internal/domain/rental/valueobjects"
	"rentra/internal/infrastructure/persistence/models"
)

func RentalToModel(r *rental.Rental) (*models.RentalModel, error) {
	currency := vo.DefaultCurrency
	if r.DailyRate() != nil {
		currency = r.DailyRate().Currency()
	}

	dispatchPhotos, err := photosToJSON(r.DispatchPhotos())
	if err != nil {
		return nil, err
	}
	returnPhotos, err := photosToJSON(r.ReturnPhotos())
	if err != nil {
		return nil, err
	}
	damagePhotos, err := photosToJSON(r.DamagePhotos())
	if err != nil {
		return nil, err
	}

	return &models.RentalModel{
		ID:           r.ID(),
		RentalNumber: r.RentalNumber(),
		AssetID:      r.AssetID(),
		ClientID:     r.ClientID(),
		Status:       r.Status().String(),

		RequestDate:     r.RequestDate(),
		StartDate:       r.StartDate(),
		ExpectedEndDate: r.ExpectedEndDate(),
		ActualEndDate:   r.ActualEndDate(),

		DailyRateCents:     moneyCents(r.DailyRate()),
		DepositAmountCents: moneyCents(r.DepositAmount()),
		PenaltyAmountCents: moneyCents(r.PenaltyAmount()),
		TotalAmountCents:   moneyCents(r.TotalAmount()),
		Currency:           currency,
		TotalDays:          r.TotalDays(),

		Notes:        r.Notes(),
		RejectReason: r.RejectReason(),

		DispatchConditionRating: ratingString(r.DispatchConditionRating()),
		DispatchConditionNotes:  r.DispatchConditionNotes(),
		DispatchPhotos:          dispatchPhotos,

		ReturnConditionRating: ratingString(r.ReturnConditionRating()),
		ReturnConditionNotes:  r.ReturnConditionNotes(),
		ReturnPhotos:          returnPhotos,
		HasDamage:             r.HasDamage(),
		DamageDescription:     r.DamageDescription(),
		DamagePhotos:          damagePhotos,

		Version:   r.Version(),
		CreatedAt: r.CreatedAt(),
		UpdatedAt: r.UpdatedAt(),
	}, nil
}

func RentalToDomain(model *models.RentalModel) (*rental.Rental, error) {
	dispatchPhotos, err := photosFromJSON(model.DispatchPhotos)
	if err != nil {
		return nil, fmt.Errorf("invalid dispatch photos: %w", err)
	}
	returnPhotos, err := photosFromJSON(model.ReturnPhotos)
	if err != nil {
		return nil, fmt.Errorf("invalid return photos: %w", err)
	}
	damagePhotos, err := photosFromJSON(model.DamagePhotos)
	if err != nil {
		return nil, fmt.Errorf("invalid damage photos: %w", err)
	}

	return rental.ReconstructRental(rental.RentalReconstructParams{
		ID:              model.ID,
		RentalNumber:    model.RentalNumber,
		AssetID:         model.AssetID,
		ClientID:        model.ClientID,
		Status:          vo.RentalStatus(model.Status),
		RequestDate:     model.RequestDate,
		StartDate:       model.StartDate,
		ExpectedEndDate: model.ExpectedEndDate,
		ActualEndDate:   model.ActualEndDate,
		DailyRate:       centsToMoney(model.DailyRateCents, model.Currency),
		DepositAmount:   centsToMoney(model.DepositAmountCents, model.Currency),
		PenaltyAmount:   centsToMoney(model.PenaltyAmountCents, model.Currency),
		TotalAmount:     centsToMoney(model.TotalAmountCents, model.Currency),
		TotalDays:       model.TotalDays,
		Notes:           model.Notes,
		RejectReason:    model.RejectReason,

		DispatchConditionRating: stringToRating(model.DispatchConditionRating),
		DispatchConditionNotes:  model.DispatchConditionNotes,
		DispatchPhotos:          dispatchPhotos,
		ReturnConditionRating:   stringToRating(model.ReturnConditionRating),
		ReturnConditionNotes:    model.ReturnConditionNotes,
		ReturnPhotos:            returnPhotos,
		HasDamage:               model.HasDamage,
		DamageDescription:       model.DamageDescription,
		DamagePhotos:            damagePhotos,

		Version:   model.Version,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	})
}

func moneyCents(m *vo.Money) *int64 {
	if m == nil {
		return nil
	}
	cents := m.AmountInCents()
	return &cents
}

func centsToMoney(cents *int64, currency string) *vo.Money {
	if cents == nil {
		return nil
	}
	m := vo.NewMoney(*cents, currency)
	return &m
}

func ratingString(r *vo.ConditionRating) *string {
	if r == nil {
		return nil
	}
	s := r.String()
	return &s
}

func stringToRating(s *string) *vo.ConditionRating {
	if s == nil {
		return nil
	}
	r := vo.ConditionRating(*s)
	return &r
}

func photosToJSON(photos []string) (datatypes.JSON, error) {
	if len(photos) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal photos: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func photosFromJSON(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var photos []string
	if err := json.Unmarshal(raw, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}
