// Package conflict decides which requested equipment items are already taken.
package conflict

import (
	"context"
	"equiplend/internal/domains/reservation/model"
	"equiplend/internal/domains/reservation/repository"
	"fmt"
)

// FindConflicts returns the items of the request that another reservation
// holds during an overlapping interval, in the order they were given.
// The reservation with id excludeID is ignored so an edit never collides with
// itself; pass model.NoReservation for a new request.
//
// Callers that act on the result must run it inside repository.Reservation.Atomic.
func FindConflicts(ctx context.Context, reader repository.Reader, items []string, interval model.Interval, excludeID int64) ([]string, error) {
	conflicts := []string{}

	for _, item := range items {
		held, err := reader.ListByEquipment(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("failed to list reservations for %q: %w", item, err)
		}

		for _, other := range held {
			if other.ID == excludeID {
				continue
			}

			if model.Overlaps(other.Interval(), interval) {
				conflicts = append(conflicts, item)

				break
			}
		}
	}

	return conflicts, nil
}
