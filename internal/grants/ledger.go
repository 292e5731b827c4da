package grants

import (
	"time"

	"github.com/kegworks/taproom-backend/pkg/db/models"
	"github.com/kegworks/taproom-backend/pkg/enums"
)

// IsExpired evaluates a grant's expiration rule at the given instant.
// extraVolumeML lets a caller ask "would charging this much exhaust it".
// Time- and drinks-kind expiration is evaluated lazily here, never stored;
// only volume-kind grants flip their stored status (see IncVolume).
func IsExpired(g *models.Grant, now time.Time, extraVolumeML int64) bool {
	if g.Status != enums.GrantStatusActive {
		return true
	}
	switch g.Expiration {
	case enums.GrantExpirationNone:
		return false
	case enums.GrantExpirationTime:
		return g.ExpTime != nil && g.ExpTime.Before(now)
	case enums.GrantExpirationVolume:
		return g.TotalVolumeML+extraVolumeML >= g.ExpVolumeML
	case enums.GrantExpirationDrinks:
		return g.TotalDrinks >= g.ExpDrinks
	default:
		return true
	}
}

// AvailableVolume reports how much volume the grant can still authorize at
// the given instant. unlimited is the "no limit" sentinel for kinds without
// a volume threshold; when it is true the returned volume is meaningless.
func AvailableVolume(g *models.Grant, now time.Time) (volumeML int64, unlimited bool) {
	if IsExpired(g, now, 0) {
		return 0, false
	}
	if g.Expiration == enums.GrantExpirationVolume {
		remaining := g.ExpVolumeML - g.TotalVolumeML
		if remaining < 0 {
			remaining = 0
		}
		return remaining, false
	}
	return 0, true
}

// IncVolume adds a charged volume to the grant's cumulative total and flips a
// volume-kind grant to expired when the threshold is reached. The active to
// expired transition is one way. Exactly-once application per charge is the
// caller's responsibility via the charge ledger.
func IncVolume(g *models.Grant, volumeML int64) {
	g.TotalVolumeML += volumeML
	if g.Expiration == enums.GrantExpirationVolume && g.TotalVolumeML >= g.ExpVolumeML {
		g.Status = enums.GrantStatusExpired
	}
}

// IncDrinks counts one pour against the grant and flips a drinks-kind grant
// to expired when its drink budget is used up.
func IncDrinks(g *models.Grant) {
	g.TotalDrinks++
	if g.Expiration == enums.GrantExpirationDrinks && g.ExpDrinks > 0 && g.TotalDrinks >= g.ExpDrinks {
		g.Status = enums.GrantStatusExpired
	}
}

// kindRank orders expiration kinds by how soon a class of grants tends to
// exhaust: dated grants first, then finite volume, then finite drink counts,
// then grants that never expire.
func kindRank(kind enums.GrantExpiration) int {
	switch kind {
	case enums.GrantExpirationTime:
		return 0
	case enums.GrantExpirationVolume:
		return 1
	case enums.GrantExpirationDrinks:
		return 2
	case enums.GrantExpirationNone:
		return 3
	default:
		return 4
	}
}

// ExpiresBefore is the total allocation order: a grant that orders first
// should be charged first so finite-horizon capacity is not wasted. Within
// time-kind grants the soonest deadline wins; within volume and drinks kinds
// the smallest remaining headroom wins. Ties break on CreatedAt then ID so
// the order is deterministic.
func ExpiresBefore(a, b *models.Grant, now time.Time) bool {
	ra, rb := kindRank(a.Expiration), kindRank(b.Expiration)
	if ra != rb {
		return ra < rb
	}

	switch a.Expiration {
	case enums.GrantExpirationTime:
		at, bt := a.ExpTime, b.ExpTime
		if at != nil && bt != nil && !at.Equal(*bt) {
			return at.Before(*bt)
		}
		if (at == nil) != (bt == nil) {
			return at != nil
		}
	case enums.GrantExpirationVolume:
		aRem, _ := AvailableVolume(a, now)
		bRem, _ := AvailableVolume(b, now)
		if aRem != bRem {
			return aRem < bRem
		}
	case enums.GrantExpirationDrinks:
		aRem := a.ExpDrinks - a.TotalDrinks
		bRem := b.ExpDrinks - b.TotalDrinks
		if aRem != bRem {
			return aRem < bRem
		}
	}

	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
