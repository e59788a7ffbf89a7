package deps

import (
	"context"
	"sync"
	"time"

	"authflow/internal/config"
	dl "authflow/internal/core/domain/logging"
	drl "authflow/internal/core/domain/rate_limiter"
	duow "authflow/internal/core/domain/unit_of_work"
	"authflow/internal/core/domain/user"
	dbpasswordreset "authflow/internal/db/password_reset"
	uow "authflow/internal/db/unit_of_work"
	dbuser "authflow/internal/db/user"
	"authflow/internal/implementations/email"
	"authflow/internal/implementations/logging"
	"authflow/internal/implementations/metrics"
	passwordhasher "authflow/internal/implementations/password_hasher"
	randomstringgenerator "authflow/internal/implementations/random_string_generator"
	ratelimiter "authflow/internal/implementations/rate_limiter"
	"authflow/internal/implementations/session"
	sessionevents "authflow/internal/implementations/session_events"
	"authflow/internal/rabbitmq"
	passwordchanged "authflow/internal/rabbitmq/publishers/password_changed"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger
	Metrics   *metrics.Metrics

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server

	Now func() time.Time

	UnitOfWork              duow.UnitOfWork
	UserRepository          user.UserRepository
	SessionRepository       user.SessionRepository
	PasswordResetRepository user.PasswordResetRepository

	RateLimiter drl.RateLimiter

	EmailSender *email.EmailSender

	UserActivationTokenGenerator user.ActivationTokenGenerator
	UserActivationTokenSender    user.ActivationTokenSender
	UserSessionTokenGenerator    user.SessionTokenGenerator
	PasswordHasher               user.PasswordHasher
	PasswordResetTokenGenerator  user.PasswordResetTokenGenerator
	PasswordResetTokenSender     user.PasswordResetTokenSender
	PasswordChangedPublisher     user.PasswordChangedPublisher
	PasswordChangedSender        user.PasswordChangedSender
	SessionEventPublisher        user.SessionEventPublisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.Metrics = metrics.New()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.PasswordResetRepository = dbpasswordreset.NewPgxPasswordResetRepository(deps.DB)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		email.Templates{
			AccountActivation: deps.Config.AwsEmailActivateAccountTemplate,
			PasswordReset:     deps.Config.AwsEmailPasswordResetTemplate,
			PasswordChanged:   deps.Config.AwsEmailPasswordChangedTemplate,
		},
		deps.Config.AwsEmailActivationUrl,
		deps.Config.AwsEmailPasswordResetUrl,
	)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.UserActivationTokenGenerator = randomstringgenerator.NewGenerator()
	deps.UserActivationTokenSender = deps.EmailSender
	deps.UserSessionTokenGenerator = session.NewUUID()
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = randomstringgenerator.NewGenerator()
	deps.PasswordResetTokenSender = deps.EmailSender
	deps.PasswordChangedSender = deps.EmailSender
	deps.SessionEventPublisher = sessionevents.NewSSE(deps.Logger, deps.SseServer, deps.Now)

	closePasswordChangedPublisher := deps.initRabbitmqPasswordChangedPublisher()

	return deps, func() {
		closeFuncs := []func(){
			closeSseServer,
			closePasswordChangedPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.LogLevel)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqPasswordChangedPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordChangedQueue
	if err := rabbitmqChannel.DeclareDurableQueue(queue); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ queue.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.PasswordChangedPublisher = passwordchanged.NewRabbitMQ(deps.Logger, rabbitmqChannel, queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down password changed publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Password changed publisher shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}
