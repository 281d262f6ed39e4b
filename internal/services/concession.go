package services

import (
	"context"
	"fmt"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain/models"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/utils"
)

// ConcessionLookup reads the admin decision on a rider's concession.
type ConcessionLookup interface {
	GetConcession(ctx context.Context, userID string) (models.ConcessionVerification, error)
}

// chargedConcession returns the category a rider is billed at. A claimed
// discount only applies when the backend holds a verified record of the
// same category; anything else is billed as general.
func chargedConcession(ctx context.Context, lookup ConcessionLookup, requestID, userID string, claimed domain.Concession) domain.Concession {
	if claimed == "" || claimed == domain.ConcessionGeneral {
		return domain.ConcessionGeneral
	}
	if lookup == nil {
		utils.LogEvent(requestID, "fare", "concession_unverified", fmt.Sprintf("user_id=%s claimed=%s reason=no_lookup", userID, claimed))
		return domain.ConcessionGeneral
	}

	v, err := lookup.GetConcession(ctx, userID)
	if err != nil {
		utils.LogError(requestID, "fare", "concession_lookup", err)
		return domain.ConcessionGeneral
	}
	if !v.Verified || domain.ParseConcession(v.ConcessionType) != claimed {
		utils.LogEvent(requestID, "fare", "concession_unverified",
			fmt.Sprintf("user_id=%s claimed=%s verified=%t type=%s", userID, claimed, v.Verified, v.ConcessionType))
		return domain.ConcessionGeneral
	}
	return claimed
}
