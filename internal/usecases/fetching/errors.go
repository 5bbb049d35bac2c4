package fetching

import (
	"errors"
	"fmt"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

var ErrFetchFailed = errors.New("failed to load")

// FetchError carrega o nível que falhou e o erro da listagem
type FetchError struct {
	Err  error
	Code string
	Tier domain.Tier
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrFetchFailed.Error(), e.Tier, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}
