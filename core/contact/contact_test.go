package contact_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adspirelabs/punotes/core"
	"github.com/adspirelabs/punotes/core/contact"
	emailsvc "github.com/adspirelabs/punotes/services/email"
	logsvc "github.com/adspirelabs/punotes/services/logger"
	testutil "github.com/adspirelabs/punotes/tests"
)

func TestService_Send(t *testing.T) {
	conf := core.NewTestConfig()
	logger := logsvc.NewRollbarLogger(log.New(&bytes.Buffer{}, "", 0), conf)
	logger.Enable(false)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	svc, err := contact.NewService(mailSvc, testutil.NewValidator(), conf.Email.ContactRecipients)
	require.NoError(t, err)

	t.Run("invalid", func(t *testing.T) {
		err := svc.Send(contact.Message{Name: "Ram", Email: "not-an-email", Subject: " ", Message: "hi"})
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Len(t, vErrs, 2)
		assert.Empty(t, mailSvc.Sent())
	})

	t.Run("valid", func(t *testing.T) {
		err := svc.Send(contact.Message{Name: "Ram", Email: "Ram@Example.com", Subject: "Missing notes", Message: "Where are <BBA> notes?"})
		require.NoError(t, err)

		sent := mailSvc.Sent()
		require.Len(t, sent, 1)
		msg := sent[0]
		assert.Equal(t, "team@punotes.test", msg.To[0].Address)
		assert.Equal(t, "ram@example.com", msg.ReplyTo.Address)
		assert.Equal(t, "Contact: Missing notes", msg.Subject)
		assert.Contains(t, msg.TextContent, "Where are <BBA> notes?")
		assert.Contains(t, msg.HTMLContent, "Where are &lt;BBA&gt; notes?")
		assert.Contains(t, msg.TextContent, conf.AppName)
	})
}

func TestNewService_NoRecipients(t *testing.T) {
	conf := core.NewTestConfig()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, nil)
	_, err := contact.NewService(mailSvc, testutil.NewValidator(), nil)
	assert.Error(t, err)
}
