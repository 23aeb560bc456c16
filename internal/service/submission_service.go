package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"formflow-be/internal/casegraph"
	"formflow-be/internal/config"
	"formflow-be/internal/constant"
	"formflow-be/internal/dto"
	"formflow-be/internal/engine"
	"formflow-be/internal/entity"
	"formflow-be/internal/nav"
	"formflow-be/internal/pkg/logger"
	"formflow-be/internal/pkg/remote"
	"formflow-be/internal/repository/unitofwork"
	"formflow-be/pkg/openrosa"
	"formflow-be/pkg/volatility"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// ErrSessionNotFound surfaces as a transport-level 404; everything that
// happens past session hydration travels inside a 200 response body.
var ErrSessionNotFound = errors.New("form session not found")

type ISubmissionService interface {
	// SubmitAll runs the submission pipeline for one request and always
	// returns a terminal response unless session hydration itself fails. The
	// caller must hold the user's named lock for the duration of the call.
	SubmitAll(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResponse, error)
}

type submissionService struct {
	uowFactory   unitofwork.RepositoryFactory
	formEngine   engine.IFormEngine
	processor    casegraph.IProcessor
	submitClient remote.ISubmitClient
	syncClient   remote.ISyncClient
	navResolver  nav.IResolver
	tracker      *volatility.Tracker
	publisher    message.Publisher
	cfg          config.SubmissionConfig
	logger       logger.ILogger
}

func NewSubmissionService(
	uowFactory unitofwork.RepositoryFactory,
	formEngine engine.IFormEngine,
	processor casegraph.IProcessor,
	submitClient remote.ISubmitClient,
	syncClient remote.ISyncClient,
	navResolver nav.IResolver,
	tracker *volatility.Tracker,
	publisher message.Publisher,
	cfg config.SubmissionConfig,
	sysLogger logger.ILogger,
) ISubmissionService {
	return &submissionService{
		uowFactory:   uowFactory,
		formEngine:   formEngine,
		processor:    processor,
		submitClient: submitClient,
		syncClient:   syncClient,
		navResolver:  navResolver,
		tracker:      tracker,
		publisher:    publisher,
		cfg:          cfg,
		logger:       sysLogger,
	}
}

// submissionContext carries the hydrated state of one pipeline run.
type submissionContext struct {
	req         *dto.SubmitRequest
	session     *entity.FormSession
	menuSession *entity.MenuSession
	uow         unitofwork.UnitOfWork
	response    *dto.SubmitResponse
}

func (c *submissionContext) success() *dto.SubmitResponse {
	return c.response
}

// processingStep is one named unit of pipeline work. A step either returns a
// response (positive to continue, anything else to halt) or an error, which is
// converted into a generic error response. The optional checkpoint is recorded
// against the session after the step succeeds.
type processingStep struct {
	name       string
	run        func(ctx context.Context, c *submissionContext) (*dto.SubmitResponse, error)
	checkpoint string
}

func (s *submissionService) SubmitAll(ctx context.Context, req *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	c, err := s.buildContext(ctx, req)
	if err != nil {
		return nil, err
	}

	steps := []processingStep{
		{name: "validateAnswers", run: s.validateAnswers},
		{name: "processRecords", run: s.processRecords, checkpoint: constant.SubmitStatusProcessedXML},
		{name: "updateVolatility", run: s.updateVolatility},
		{name: "performSync", run: s.performSync},
		{name: "resolveNextScreen", run: s.resolveNextScreen, checkpoint: constant.SubmitStatusProcessedStack},
	}

	// Execute steps one at a time, only proceeding when the previous step was
	// positive. The first failing step's response is the terminal response.
	for _, step := range steps {
		if halted := s.executeStep(ctx, c, step); halted != nil {
			return halted, nil
		}
	}

	// Only delete the session after every stage succeeded.
	if err := c.uow.FormSessionRepository().DeleteById(ctx, c.session.Id); err != nil {
		return nil, err
	}

	s.publishSubmitted(c)

	return c.response, nil
}

func (s *submissionService) buildContext(ctx context.Context, req *dto.SubmitRequest) (*submissionContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.FormSessionRepository().GetById(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Username != req.Username || session.Domain != req.Domain {
		return nil, ErrSessionNotFound
	}

	var menuSession *entity.MenuSession
	if session.MenuSessionId != nil {
		menuSession, err = uow.MenuSessionRepository().GetById(ctx, *session.MenuSessionId)
		if err != nil {
			return nil, err
		}
	}

	return &submissionContext{
		req:         req,
		session:     session,
		menuSession: menuSession,
		uow:         uow,
		response:    &dto.SubmitResponse{Status: constant.SubmitResponseStatusPositive},
	}, nil
}

// executeStep returns nil to continue processing, or the terminal response
// that halts the pipeline.
func (s *submissionService) executeStep(ctx context.Context, c *submissionContext, step processingStep) *dto.SubmitResponse {
	resp, err := step.run(ctx, c)
	if err != nil {
		resp = s.errorResponse(constant.SubmitResponseError, err.Error(), err)
	}

	if resp.Status == constant.SubmitResponseStatusPositive {
		s.recordCheckpoint(ctx, c, step)
		return nil
	}

	s.logger.Debug("submission", "aborting processing steps after failed step", map[string]interface{}{
		"step":   step.name,
		"status": resp.Status,
	})
	return resp
}

// recordCheckpoint is advisory bookkeeping: retries always re-run the whole
// pipeline, so a failed save only loses audit state.
func (s *submissionService) recordCheckpoint(ctx context.Context, c *submissionContext, step processingStep) {
	if step.checkpoint == "" {
		return
	}
	c.session.SubmitStatus = step.checkpoint
	if err := c.uow.FormSessionRepository().Save(ctx, c.session); err != nil {
		s.logger.Warn("submission", "failed to record step checkpoint", map[string]interface{}{
			"step":       step.name,
			"checkpoint": step.checkpoint,
			"error":      err.Error(),
		})
	}
}

func (s *submissionService) validateAnswers(ctx context.Context, c *submissionContext) (*dto.SubmitResponse, error) {
	answerErrors := s.formEngine.ValidateAnswers(c.session, c.req.Answers, c.session.SkipValidation)
	if len(answerErrors) > 0 || !c.req.Prevalidated {
		return &dto.SubmitResponse{
			Status: constant.AnswerResponseStatusNegative,
			Errors: answerErrors,
		}, nil
	}
	return c.success(), nil
}

func (s *submissionService) processRecords(ctx context.Context, c *submissionContext) (*dto.SubmitResponse, error) {
	instanceXml, err := s.formEngine.InstanceXml(c.session)
	if err != nil {
		return nil, err
	}

	if err := c.uow.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		// Unless a commit happened, every exit path rolls the mutation back.
		if !committed {
			if rbErr := c.uow.Rollback(); rbErr != nil {
				s.logger.Error("submission", "rollback failed", map[string]interface{}{
					"session_id": c.session.Id,
					"error":      rbErr.Error(),
				})
			}
		}
	}()

	result, err := s.processor.ProcessInstance(ctx, c.uow, c.session.Domain, instanceXml)
	if err != nil {
		var cycleErr *casegraph.CycleError
		if errors.As(err, &cycleErr) {
			return s.errorResponse(constant.SubmitResponseCaseCycleError,
				"Form submission failed due to a cyclic case relationship. "+
					"Please contact the support desk to help resolve this issue.", err), nil
		}
		return nil, err
	}

	ack, err := s.submitClient.SubmitForm(ctx, instanceXml, c.session.PostUrl)
	if err != nil {
		if errors.Is(err, remote.ErrRateLimited) {
			return &dto.SubmitResponse{Status: constant.SubmitResponseTooManyRequests}, nil
		}
		var rejected *remote.RejectedError
		if errors.As(err, &rejected) {
			return s.errorResponse(constant.SubmitResponseError,
				fmt.Sprintf("Form submission failed with error response: %s", rejected.Error()), err), nil
		}
		return nil, err
	}
	c.response.SubmitResponseMessage = openrosa.ParseResponseMessage(ack)

	if err := c.uow.Commit(); err != nil {
		return nil, err
	}
	committed = true

	// Cleanup sub-step. The remote authority has durably accepted the
	// submission by now, so purge errors are logged, never propagated.
	if result.DisruptedIndexes && s.cfg.AutoPurge {
		if _, purgeErr := s.processor.PurgeOrphans(ctx, c.uow, c.session.Domain); purgeErr != nil {
			s.logger.Error("submission", "orphan purge failed after accepted submission", map[string]interface{}{
				"session_id": c.session.Id,
				"domain":     c.session.Domain,
				"error":      purgeErr.Error(),
			})
		}
	}

	return c.success(), nil
}

func (s *submissionService) updateVolatility(ctx context.Context, c *submissionContext) (*dto.SubmitResponse, error) {
	record := volatility.NewRecord(c.session.VolatilityKey, c.session.Username)
	if _, err := s.tracker.ReconcileSubmitted(ctx, record); err != nil {
		// Tracking is best effort; a cache hiccup never fails the submission.
		s.logger.Warn("submission", "volatility reconcile failed", map[string]interface{}{
			"key":   c.session.VolatilityKey,
			"error": err.Error(),
		})
	}
	return c.success(), nil
}

func (s *submissionService) performSync(ctx context.Context, c *submissionContext) (*dto.SubmitResponse, error) {
	if !s.cfg.SyncAfterForm || c.session.SuppressAutosync {
		return c.success(), nil
	}

	// Must run before navigation resolution: freshly synced data can change
	// which navigation path is valid.
	err := s.syncClient.PerformSync(ctx, c.session.Domain, c.session.Username, s.cfg.SkipFixturesAfterSubmit)
	if err != nil {
		s.logger.Warn("submission", "post-submit sync failed", map[string]interface{}{
			"domain":   c.session.Domain,
			"username": c.session.Username,
			"error":    err.Error(),
		})
	}
	return c.success(), nil
}

func (s *submissionService) resolveNextScreen(ctx context.Context, c *submissionContext) (*dto.SubmitResponse, error) {
	if c.menuSession == nil {
		// Forms entered outside menu navigation have no next screen.
		c.response.NextScreen = nil
		return c.success(), nil
	}

	nextScreen, err := s.navResolver.ResolveNext(ctx, c.menuSession)
	if err != nil {
		return nil, err
	}
	c.response.NextScreen = nextScreen
	return c.success(), nil
}

// errorResponse is the single place an internal failure becomes an externally
// stable status. It logs the notification and the triggering error uniformly.
func (s *submissionService) errorResponse(status, message string, err error) *dto.SubmitResponse {
	notification := &dto.NotificationMessage{
		Message: message,
		IsError: true,
		Tag:     constant.NotificationTagSubmit,
	}

	s.logger.Info("submission", "notification", map[string]interface{}{
		"message": notification.Message,
		"tag":     notification.Tag,
	})
	details := map[string]interface{}{"status": status}
	if err != nil {
		details["error"] = err.Error()
	}
	s.logger.Error("submission", message, details)

	return &dto.SubmitResponse{
		Status:       status,
		Notification: notification,
	}
}

func (s *submissionService) publishSubmitted(c *submissionContext) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"session_id": c.session.Id,
		"username":   c.session.Username,
		"domain":     c.session.Domain,
		"app_id":     c.session.AppId,
		"title":      c.session.Title,
	})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(s.cfg.SubmittedTopicName, msg); err != nil {
		s.logger.Warn("submission", "failed to publish submitted event", map[string]interface{}{
			"session_id": c.session.Id,
			"error":      err.Error(),
		})
	}
}
