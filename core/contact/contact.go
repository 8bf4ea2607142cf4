// Package contact forwards messages from the site's contact form to the maintainers.
package contact

import (
	"net/mail"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
)

const templateName = "contact"

type Message struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"notblank,max=200"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

func (m *Message) Validate(validate *validator.Validate) error {
	m.Name = core.CleanString(m.Name)
	m.Email = core.CleanString(m.Email, true /* lower */)
	m.Subject = core.CleanString(m.Subject)
	m.Message = core.CleanString(m.Message)
	return validate.Struct(m)
}

type Service struct {
	mailSvc    core.EmailService
	validate   *validator.Validate
	recipients []mail.Address
}

func NewService(mailSvc core.EmailService, validate *validator.Validate, recipients []string) (*Service, error) {
	err := vala.BeginValidation().Validate(
		vala.IsNotNil(mailSvc, "mailSvc"),
		vala.IsNotNil(validate, "validate"),
		vala.GreaterThan(len(recipients), 0, "recipients"),
	).Check()
	if err != nil {
		return nil, err
	}

	svc := &Service{mailSvc: mailSvc, validate: validate}
	for _, r := range recipients {
		addr, err := mail.ParseAddress(r)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing contact recipient %q", r)
		}
		svc.recipients = append(svc.recipients, *addr)
	}
	return svc, nil
}

// Send validates m and mails it to the maintainers, with the sender as Reply-To.
func (svc *Service) Send(m Message) error {
	if err := m.Validate(svc.validate); err != nil {
		return err
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           svc.recipients,
		ReplyTo:      &mail.Address{Name: m.Name, Address: m.Email},
		Subject:      "Contact: " + m.Subject,
		TemplateName: templateName,
		TemplateData: m,
	})
	return nil
}
