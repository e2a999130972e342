package profiles

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type privilegeChecker struct {
	Client *rest.Client
	Log    *zap.Logger
}

// NewPrivilegeChecker asks the platform's is_admin function. Callers treat
// any error as "not admin".
func NewPrivilegeChecker(client *rest.Client, logger *zap.Logger) contracts.PrivilegeChecker {
	return &privilegeChecker{
		Client: client,
		Log:    logger,
	}
}

func (c *privilegeChecker) IsAdmin(ctx context.Context, subjectID string) (bool, error) {
	requestID := utils.GetRequestID(ctx)
	c.Log.Info("privilegeChecker.IsAdmin called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubjectIDKey, subjectID),
	)

	var isAdmin bool
	err := c.Client.RPC(ctx, constvars.RPCIsAdmin, map[string]string{"uid": subjectID}, &isAdmin)
	if err != nil {
		c.Log.Error("privilegeChecker.IsAdmin error calling rpc",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return false, err
	}

	c.Log.Info("privilegeChecker.IsAdmin succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingIsAdminKey, isAdmin),
	)
	return isAdmin, nil
}
