package ledger

import (
	"context"
	"sort"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	"github.com/MrEisbear/Silk/internal/domain/port/persistence"
)

// lockAccounts acquires row locks on every given account id in ascending
// order. Taking locks in one global order keeps two operations that touch
// the same pair of accounts from deadlocking each other.
func lockAccounts(ctx context.Context, repo persistence.AccountRepository, ids ...uint64) (map[uint64]*entity.Account, error) {
	ordered := make([]uint64, 0, len(ids))
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			ordered = append(ordered, id)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	locked := make(map[uint64]*entity.Account, len(ordered))
	for _, id := range ordered {
		account, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = account
	}
	return locked, nil
}
