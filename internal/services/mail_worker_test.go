package services_test

import (
	"errors"
	"testing"

	"eklerchik/internal/mocks"
	"eklerchik/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailWorkerDeliversQueuedMail(t *testing.T) {
	mailer := new(mocks.MockMailer)
	mailer.On("SendEmail", "a@example.com", "Hi", "body").Return(nil)
	mailer.On("SendEmail", "b@example.com", "Hi", "body").Return(errors.New("550 mailbox unavailable"))

	worker := services.NewMailWorker(mailer, 2, 10)
	worker.Start()

	require.NoError(t, worker.SendEmail("a@example.com", "Hi", "body"))
	require.NoError(t, worker.SendEmail("b@example.com", "Hi", "body"))
	worker.Stop()

	mailer.AssertExpectations(t)
	status, err := worker.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, false, status["running"])
	assert.Equal(t, int64(1), status["sent"])
	assert.Equal(t, int64(1), status["failed"])
	assert.Equal(t, 0, status["queued"])
}

func TestMailWorkerRejectsWhenStopped(t *testing.T) {
	mailer := new(mocks.MockMailer)
	worker := services.NewMailWorker(mailer, 1, 1)

	assert.ErrorIs(t, worker.SendEmail("a@example.com", "Hi", "body"), services.ErrWorkerStopped)

	worker.Start()
	worker.Stop()
	worker.Stop()
	assert.ErrorIs(t, worker.SendEmail("a@example.com", "Hi", "body"), services.ErrWorkerStopped)
	assert.Empty(t, mailer.Calls)
}
