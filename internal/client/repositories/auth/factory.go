package auth

import (
	"context"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

// New picks the repository variant: the API one unless useAPI is false.
func New(useAPI bool, doer client.Doer, log logging.Logger) Repository {
	if useAPI {
		log.Info(context.Background(), "auth repository selected", "variant", "api")
		return NewAPIRepository(doer)
	}
	log.Info(context.Background(), "auth repository selected", "variant", "mock")
	return NewMockRepository()
}
