package application

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupNotifications(t *testing.T) (*NotificationService, *testEnv) {
	env := newTestEnv(t)
	return NewNotificationService(env.repos, env.deps), env
}

func TestSendStatusEmail_AppendsOneEntry(t *testing.T) {
	svc, env := setupNotifications(t)
	app := newApplication(jobapp.StatusInterviewing)
	app.Communications.Append(jobapp.Communication{Type: jobapp.CommunicationStatusUpdateEmail, Status: "reviewing"})

	env.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
	env.appRepo.EXPECT().AppendCommunication(gomock.Any(), app.ID, gomock.Any()).Return(nil)

	entry, err := svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{
		ApplicationID: app.ID.String(),
		NewStatus:     jobapp.StatusInterviewing,
		InterviewDate: "2026-11-03",
		InterviewTime: "14:30 CET",
	})
	require.NoError(t, err)
	assert.Equal(t, jobapp.StatusInterviewing, entry.Status)
	assert.Equal(t, 2, app.Communications.Len())

	require.Len(t, env.mailer.sent, 1)
	assert.Contains(t, env.mailer.sent[0].HTML, "Tuesday, November 3, 2026")
	assert.Contains(t, env.mailer.sent[0].HTML, "14:30 CET")

	require.Len(t, *env.audits, 1)
	assert.Equal(t, audit.ActionStatusEmail, (*env.audits)[0].Action)
}

func TestSendStatusEmail_DeliveryFailureAppendsNothing(t *testing.T) {
	svc, env := setupNotifications(t)
	env.mailer.err = errors.New("connection refused")
	app := newApplication(jobapp.StatusNew)

	env.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)

	_, err := svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{
		ApplicationID: app.ID.String(),
		NewStatus:     jobapp.StatusReviewing,
	})
	assert.ErrorIs(t, err, ErrEmailDelivery)
	assert.Equal(t, 0, app.Communications.Len())
	assert.Empty(t, *env.audits)
}

func TestSendStatusEmail_AppendFailureIsNotReturned(t *testing.T) {
	svc, env := setupNotifications(t)
	app := newApplication(jobapp.StatusNew)

	env.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
	env.appRepo.EXPECT().AppendCommunication(gomock.Any(), app.ID, gomock.Any()).Return(errors.New("db down"))

	entry, err := svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{
		ApplicationID: app.ID.String(),
		NewStatus:     jobapp.StatusReviewing,
	})
	require.NoError(t, err)
	assert.NotNil(t, entry)
	assert.Len(t, env.mailer.sent, 1)
}

func TestSendStatusEmail_UnknownStatusUsesGenericTemplate(t *testing.T) {
	svc, env := setupNotifications(t)
	app := newApplication(jobapp.StatusNew)

	env.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
	env.appRepo.EXPECT().AppendCommunication(gomock.Any(), app.ID, gomock.Any()).Return(nil)

	_, err := svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{
		ApplicationID: app.ID.String(),
		NewStatus:     "on_hold",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Application status update: Backend Engineer"}, env.mailer.subjects())
}

func TestSendStatusEmail_TitleFallsBackWhenListingMissing(t *testing.T) {
	svc, env := setupNotifications(t)
	env.source.err = errors.New("cms timeout")
	app := newApplication(jobapp.StatusNew)

	env.appRepo.EXPECT().GetByID(gomock.Any(), app.ID).Return(app, nil)
	env.appRepo.EXPECT().AppendCommunication(gomock.Any(), app.ID, gomock.Any()).Return(nil)

	_, err := svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{
		ApplicationID: app.ID.String(),
		NewStatus:     jobapp.StatusReviewing,
	})
	require.NoError(t, err)
	require.Len(t, env.mailer.sent, 1)
	assert.Contains(t, env.mailer.sent[0].HTML, fallbackPositionTitle)
}

func TestSendStatusEmail_Errors(t *testing.T) {
	svc, env := setupNotifications(t)
	id := uuid.New()
	env.appRepo.EXPECT().GetByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{ApplicationID: id.String(), NewStatus: jobapp.StatusReviewing})
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	_, err = svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{ApplicationID: id.String()})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SendStatusEmail(context.Background(), actor, jobapp.StatusEmailInput{NewStatus: jobapp.StatusReviewing})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, env.mailer.sent)
}
