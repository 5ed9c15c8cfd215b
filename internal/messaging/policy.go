package messaging

import (
	"github.com/chaitanyakotagiri27/SecureShift/internal/common"
)

// RolePolicy decides whether an actor with senderRole may message an
// actor with receiverRole. It is injected into the service so deployments
// can restrict messaging without touching the engine.
type RolePolicy func(senderRole, receiverRole string) bool

// AllowAll is the default policy: any registered actor may message any
// other.
func AllowAll(_, _ string) bool { return true }

// CrossRoleOnly restricts messaging to guard<->employer pairs.
func CrossRoleOnly(senderRole, receiverRole string) bool {
	return (senderRole == common.RoleGuard && receiverRole == common.RoleEmployer) ||
		(senderRole == common.RoleEmployer && receiverRole == common.RoleGuard)
}
