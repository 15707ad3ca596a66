package usecase

import (
	"context"
	"fmt"

	"github.com/chenders/deadonfilm/internal/domain"
)

// enrichPath resolves display metadata for every actor on the path and
// attaches the necrology summary. Individual lookup failures degrade to a
// placeholder so one flaky actor cannot sink a completed search.
func (uc *Connection) enrichPath(ctx context.Context, hops []pathHop) (domain.ConnectionResult, error) {
	segments := buildSegments(hops)

	deceasedIDs := make([]int, 0, len(segments))
	for i := range segments {
		actorID := segments[i].Actor.ID

		detail, err := uc.repo.GetActorDetail(ctx, actorID)
		if err != nil {
			if ctx.Err() != nil {
				return domain.ConnectionResult{}, ctx.Err()
			}
			uc.log.WarnContext(ctx, "actor detail fetch failed, using placeholder",
				"actorID", actorID,
				"error", err,
			)
			segments[i].Actor = domain.Actor{
				ID:   actorID,
				Name: fmt.Sprintf("Актер %d", actorID),
			}
			continue
		}

		segments[i].Actor = domain.Actor{
			ID:       detail.ID,
			Name:     detail.Name,
			PhotoURL: detail.PhotoURL,
			Deceased: detail.DeathDate != "",
		}
		if segments[i].Actor.Deceased {
			deceasedIDs = append(deceasedIDs, actorID)
		}
	}

	result := domain.ConnectionResult{
		Degrees:       len(segments) - 1,
		Path:          segments,
		TotalDeceased: len(deceasedIDs),
	}
	if len(deceasedIDs) == 0 {
		return result, nil
	}

	records, err := uc.deceased.GetRecords(ctx, deceasedIDs)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ConnectionResult{}, ctx.Err()
		}
		uc.log.WarnContext(ctx, "deceased records lookup failed",
			"actorIDs", deceasedIDs,
			"error", err,
		)
		return result, nil
	}

	// An actor can be deceased without a necrology record; it stays in the
	// count but is omitted from the detailed list.
	for _, id := range deceasedIDs {
		if record, ok := records[id]; ok {
			result.DeceasedOnPath = append(result.DeceasedOnPath, record)
		}
	}
	return result, nil
}
