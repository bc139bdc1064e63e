package engagement

import (
	"fmt"

	"github.com/secretariat-suite/engagement-service/internal/domain"
)

func cacheKeyCounter(ref domain.LocationRef) string {
	return fmt.Sprintf("counter:%s:%d", ref.Category, ref.ID)
}
