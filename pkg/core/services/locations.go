package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timbercreek/coffee-connect/pkg/core/scoring"
	"github.com/timbercreek/coffee-connect/pkg/db"
)

// LocationStore defines the database operations for the location lifecycle
type LocationStore interface {
	GetLocation(ctx context.Context, id string) (*db.Location, error)
	InsertLocation(ctx context.Context, location *db.Location) error
	ApproveLocation(ctx context.Context, id string) error
	DeleteLocationCascade(ctx context.Context, id string) error
	ListLocations(ctx context.Context) ([]db.Location, error)
	AddPoints(ctx context.Context, userID string, delta int) error
}

// AddLocationParams describes a venue submitted by a member
type AddLocationParams struct {
	Name              string
	Address           string
	Latitude          float64
	Longitude         float64
	SubmittedByUserID string
}

// AddLocation records a member-submitted venue. It starts unapproved and is
// not available for timeslots until an administrator approves it. The
// submitter earns submission points.
func AddLocation(
	ctx context.Context,
	store LocationStore,
	scores scoring.Table,
	logger *zap.Logger,
	params AddLocationParams,
) (*db.Location, error) {
	location := &db.Location{
		ID:                uuid.New().String(),
		Name:              params.Name,
		Address:           params.Address,
		Latitude:          params.Latitude,
		Longitude:         params.Longitude,
		IsApproved:        false,
		SubmittedByUserID: params.SubmittedByUserID,
	}

	if err := store.InsertLocation(ctx, location); err != nil {
		return nil, storeErr("add location", err)
	}

	if params.SubmittedByUserID != "" {
		if err := store.AddPoints(ctx, params.SubmittedByUserID, scores.Points(scoring.EventSubmitLocation)); err != nil {
			logger.Error("Failed to award submission points",
				zap.String("user_id", params.SubmittedByUserID), zap.Error(err))
		}
	}

	logger.Info("Location submitted for approval",
		zap.String("location_id", location.ID),
		zap.String("name", location.Name))

	return location, nil
}

// ApproveLocation marks a submitted venue as approved, making it available
// for timeslot creation, and awards approval points to the original
// submitter. Administrator only. Approving an already-approved location is
// a no-op so repeated approvals cannot farm points.
func ApproveLocation(
	ctx context.Context,
	store LocationStore,
	scores scoring.Table,
	logger *zap.Logger,
	locationID string,
	requesterRole db.Role,
) (*db.Location, error) {
	if !db.CanApproveLocations(requesterRole) {
		return nil, fmt.Errorf("only administrators may approve locations: %w", ErrForbidden)
	}

	location, err := store.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("location %s: %w", locationID, ErrNotFound)
		}
		return nil, storeErr("approve location", err)
	}
	if location.IsApproved {
		return location, nil
	}

	if err := store.ApproveLocation(ctx, locationID); err != nil {
		return nil, storeErr("approve location", err)
	}
	location.IsApproved = true

	if location.SubmittedByUserID != "" {
		if err := store.AddPoints(ctx, location.SubmittedByUserID, scores.Points(scoring.EventApproveLocation)); err != nil {
			logger.Error("Failed to award approval points",
				zap.String("user_id", location.SubmittedByUserID), zap.Error(err))
		}
	}

	logger.Info("Location approved",
		zap.String("location_id", location.ID),
		zap.String("name", location.Name))

	return location, nil
}

// DeleteLocation removes a venue together with its dependent timeslots and
// meetings. Administrator only.
func DeleteLocation(
	ctx context.Context,
	store LocationStore,
	logger *zap.Logger,
	locationID string,
	requesterRole db.Role,
) error {
	if !db.CanDeleteLocations(requesterRole) {
		return fmt.Errorf("only administrators may delete locations: %w", ErrForbidden)
	}

	if err := store.DeleteLocationCascade(ctx, locationID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("location %s: %w", locationID, ErrNotFound)
		}
		return storeErr("delete location", err)
	}

	logger.Info("Location deleted", zap.String("location_id", locationID))
	return nil
}

// ListLocations returns all venues ordered by name.
func ListLocations(ctx context.Context, store LocationStore) ([]db.Location, error) {
	locations, err := store.ListLocations(ctx)
	if err != nil {
		return nil, storeErr("list locations", err)
	}
	return locations, nil
}
