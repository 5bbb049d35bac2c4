package workspace

import (
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

type MutationState string

const (
	MutationPending    MutationState = "pending"
	MutationCommitted  MutationState = "committed"
	MutationRolledBack MutationState = "rolled_back"
)

// Mutation é uma alteração otimista: o valor confirmado antes da chamada e o valor pendente exibido
type Mutation struct {
	Tier      domain.Tier
	RowID     string
	Committed domain.Entity
	Pending   domain.EntityStatus
	State     MutationState
}

func rowKey(tier domain.Tier, id string) string {
	return string(tier) + ":" + id
}
