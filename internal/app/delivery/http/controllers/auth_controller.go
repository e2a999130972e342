package controllers

import (
	"context"
	"errors"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/core/guard"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/dto/responses"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AuthController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Notifier       contracts.Notifier
}

func NewAuthController(logger *zap.Logger, internalConfig *config.InternalConfig, notifier contracts.Notifier) *AuthController {
	return &AuthController{
		Log:            logger,
		InternalConfig: internalConfig,
		Notifier:       notifier,
	}
}

func (ctrl *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.SignUp)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	resolver, _, err := settledSnapshot(ctx, ctrl.settleTimeout())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	err = resolver.SignUp(ctx, request.Email, request.Password, identity.SignUpAttributes{
		FirstName: request.FirstName,
		LastName:  request.LastName,
		UserType:  models.Role(request.UserType),
	})
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	token, err := ctrl.sessionToken(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Confirmation by email is required before the first sign-in.
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SignUpSuccessMessage, responses.SignIn{
		Token:   token,
		Session: sessionState(resolver.Snapshot()),
	})
}

func (ctrl *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	ctrl.signIn(w, r, false)
}

// AdminSignIn signs in and keeps the session only when the subject is an administrator.
func (ctrl *AuthController) AdminSignIn(w http.ResponseWriter, r *http.Request) {
	ctrl.signIn(w, r, true)
}

func (ctrl *AuthController) signIn(w http.ResponseWriter, r *http.Request, adminOnly bool) {
	// Bind body to request
	request := new(requests.SignIn)
	if err := bindJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	resolver, _, err := settledSnapshot(ctx, ctrl.settleTimeout())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := resolver.SignIn(ctx, request.Email, request.Password); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	waitCtx, waitCancel := context.WithTimeout(ctx, ctrl.settleTimeout())
	snapshot, err := resolver.WaitSettled(waitCtx)
	waitCancel()
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if adminOnly {
		if !snapshot.IsAdmin {
			ctrl.Log.Info("AuthController.AdminSignIn subject is not an administrator",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingSubjectIDKey, snapshot.SubjectID()),
			)
			if err := resolver.SignOut(ctx); err != nil {
				ctrl.Log.Error("AuthController.AdminSignIn error signing out non-administrator",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
					zap.Error(err),
				)
			}
			ctrl.Notifier.Error(ctx, constvars.NotifyAdminRightsMissing)
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrNotAdministrator(errors.New(snapshot.SubjectID())))
			return
		}
		ctrl.Notifier.Success(ctx, constvars.NotifyAdminWelcome)
	}

	token, err := ctrl.sessionToken(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignInSuccessMessage, responses.SignIn{
		Token:     token,
		Session:   sessionState(snapshot),
		LandingTo: guard.LandingFor(snapshot),
	})
}

func (ctrl *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	resolver, _, err := settledSnapshot(ctx, ctrl.settleTimeout())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := resolver.SignOut(ctx); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignOutSuccessMessage, responses.SignOut{
		RedirectTo: guard.LoginPath,
	})
}

// Session reports the resolver state without waiting for it to settle.
func (ctrl *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	_, snapshot, err := settledSnapshot(r.Context(), ctrl.settleTimeout())
	if err != nil && snapshot.State == "" {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSessionSuccessMessage, sessionState(snapshot))
}

func (ctrl *AuthController) Landing(w http.ResponseWriter, r *http.Request) {
	_, snapshot, err := settledSnapshot(r.Context(), ctrl.settleTimeout())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetLandingSuccessMessage, responses.Landing{
		RedirectTo: guard.LandingFor(snapshot),
	})
}

func (ctrl *AuthController) sessionToken(ctx context.Context) (string, error) {
	return utils.GenerateSessionJWT(utils.GetAppSessionID(ctx), ctrl.InternalConfig.JWT.Secret, ctrl.InternalConfig.JWT.ExpTimeInHour)
}

func (ctrl *AuthController) settleTimeout() time.Duration {
	return settleTimeout(ctrl.InternalConfig)
}
