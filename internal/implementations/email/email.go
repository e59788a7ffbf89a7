package email

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"authflow/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type sesClient interface {
	SendTemplatedEmail(
		ctx context.Context,
		params *ses.SendTemplatedEmailInput,
		optFns ...func(*ses.Options),
	) (*ses.SendTemplatedEmailOutput, error)
}

type Templates struct {
	AccountActivation string
	PasswordReset     string
	PasswordChanged   string
}

type EmailSender struct {
	ses sesClient
	// This address must be verified with Amazon SES.
	sender               string
	templates            Templates
	accountActivationUrl url.URL
	passwordResetUrl     url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	templates Templates,
	accountActivationUrl url.URL,
	passwordResetUrl url.URL,
) *EmailSender {
	return newEmailSender(ses.NewFromConfig(awsConfig), sender, templates, accountActivationUrl, passwordResetUrl)
}

func newEmailSender(
	client sesClient,
	sender string,
	templates Templates,
	accountActivationUrl url.URL,
	passwordResetUrl url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                  client,
		sender:               sender,
		templates:            templates,
		accountActivationUrl: accountActivationUrl,
		passwordResetUrl:     passwordResetUrl,
	}
}

func (s *EmailSender) SendActivationToken(ctx context.Context, u user.User) error {
	if !u.ActivationToken.IsPresent {
		return errors.New("user activation token is not defined")
	}
	activationUrl := s.accountActivationUrl
	query := activationUrl.Query()
	query.Set("token", string(u.ActivationToken.Value))
	activationUrl.RawQuery = query.Encode()

	return s.send(ctx, u, s.templates.AccountActivation, accountActivationTemplateParams{
		Name:           string(u.Name),
		ActivationCode: string(u.ActivationToken.Value),
		ActivationUrl:  activationUrl.String(),
	})
}

func (s *EmailSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	if token == "" {
		return errors.New("password reset token is empty")
	}
	return s.send(ctx, u, s.templates.PasswordReset, passwordResetTemplateParams{
		Name:             string(u.Name),
		PasswordResetUrl: s.PasswordResetUrl(token),
	})
}

func (s *EmailSender) SendPasswordChanged(ctx context.Context, u user.User, at time.Time) error {
	return s.send(ctx, u, s.templates.PasswordChanged, passwordChangedTemplateParams{
		Name:      string(u.Name),
		ChangedAt: at.UTC().Format(time.RFC1123),
	})
}

// PasswordResetUrl returns the link the user follows to choose a new password.
func (s *EmailSender) PasswordResetUrl(token user.PasswordResetToken) string {
	resetUrl := s.passwordResetUrl
	query := resetUrl.Query()
	query.Set("token", string(token))
	resetUrl.RawQuery = query.Encode()
	return resetUrl.String()
}

func (s *EmailSender) send(ctx context.Context, u user.User, template string, params any) error {
	if u.Email == "" {
		return errors.New("user email is not defined")
	}
	templateParamsBytes, err := json.Marshal(params)
	if err != nil {
		return err
	}

	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: aws.String(s.sender),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{string(u.Email)},
			},
			Template:     aws.String(template),
			TemplateData: aws.String(string(templateParamsBytes)),
		},
	)
	return err
}

type accountActivationTemplateParams struct {
	Name           string `json:"name"`
	ActivationCode string `json:"activationCode"`
	ActivationUrl  string `json:"activationUrl"`
}

type passwordResetTemplateParams struct {
	Name             string `json:"name"`
	PasswordResetUrl string `json:"passwordResetUrl"`
}

type passwordChangedTemplateParams struct {
	Name      string `json:"name"`
	ChangedAt string `json:"changedAt"`
}
