package signupwithemail

import (
	"context"
	"errors"

	e "authflow/internal/core/domain/errors"
	"authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/user"
	"authflow/internal/core/services"
)

type serviceWithActivationTokenSending struct {
	log    logging.Logger
	sender user.ActivationTokenSender
	inner  services.Service[Input, Result]
}

func NewWithActivationTokenSending(
	log logging.Logger,
	sender user.ActivationTokenSender,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithActivationTokenSending{
		log:    log,
		sender: sender,
		inner:  inner,
	}
}

func (s *serviceWithActivationTokenSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	err = s.sender.SendActivationToken(ctx, result.User)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send activation token.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(ctx, "Activation token has been sent to the user.", logging.Entry("userID", result.User.ID))
	return result, nil
}
