package port

import (
	"context"

	"marketbrief/internal/domain"
)

// BriefWriter turns ranked context, exposure and earnings into narrative text.
type BriefWriter interface {
	Write(ctx context.Context, input domain.BriefInput) (string, error)
}
