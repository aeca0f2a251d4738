package main

import (
	"context"
	"time"

	"github.com/Abraxas-365/aikyuu/internal/ai/embeddings"
	"github.com/Abraxas-365/aikyuu/internal/ai/screener"
	"github.com/Abraxas-365/aikyuu/pkg/config"
	"github.com/Abraxas-365/aikyuu/pkg/fsx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/sandbox"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxapi"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxauth"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxinfra"
	"github.com/Abraxas-365/aikyuu/sandbox/sandboxsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
)

const queueName = "aikyuu:analysis"

// Container holds the sandbox dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	Queue      sandbox.JobQueue
	Scorer     sandbox.Scorer
	Sender     *sandboxinfra.ConsoleSender

	// Services
	Tokens  *sandboxauth.TokenService
	Service *sandboxsrv.Service
	Worker  *sandboxsrv.AnalysisWorker

	Handlers *sandboxapi.Handlers
}

func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initInfrastructure(ctx)
	c.initServices()
	return c
}

func (c *Container) initInfrastructure(ctx context.Context) {
	sb := c.Config.Sandbox

	// 1. Job queue
	switch sb.Queue {
	case "redis":
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     sb.RedisAddr,
			Password: sb.RedisPass,
			DB:       0,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v", err)
		}
		c.Queue = sandboxinfra.NewRedisQueue(c.Redis, queueName)
	default:
		c.Queue = sandboxinfra.NewMemoryQueue(0)
	}

	// 2. File storage
	switch sb.Storage {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Export.AWSRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Export.AWSBucket, "sandbox")
	default:
		c.FileSystem = fsxlocal.NewLocalFileSystem(sb.StorageDir)
	}

	// 3. Scorer
	switch sb.Scorer {
	case "llm":
		c.Scorer = sandboxinfra.NewLLMScorer(screener.New(sb.OpenAIKey, sb.OpenAIModel))
	case "embedding":
		c.Scorer = sandboxinfra.NewEmbeddingScorer(embeddings.NewGenerator(sb.OpenAIKey))
	default:
		c.Scorer = sandboxinfra.KeywordScorer{}
	}
	logx.Infof("queue=%s storage=%s scorer=%s", sb.Queue, sb.Storage, sb.Scorer)

	c.Sender = sandboxinfra.NewConsoleSender()
}

func (c *Container) initServices() {
	sb := c.Config.Sandbox

	if sb.JWTSecret == "sandbox-secret" {
		logx.Warn("JWT_SECRET is not set, using the sandbox default")
	}
	c.Tokens = sandboxauth.NewTokenService(sb.JWTSecret, 24*time.Hour)

	c.Service = sandboxsrv.NewService(
		sandboxinfra.NewMemoryRepository(),
		c.FileSystem,
		c.Queue,
		c.Scorer,
		c.Sender,
		c.Tokens,
		sandboxsrv.Config{StartingPoints: sb.StartingPoint},
	)
	c.Worker = sandboxsrv.NewAnalysisWorker(c.Service, c.Queue, sandboxsrv.WorkerConfig{Workers: sb.Workers})
	c.Handlers = sandboxapi.NewHandlers(c.Service)
}

// Seed creates the configured demo account, if any
func (c *Container) Seed(ctx context.Context) {
	sb := c.Config.Sandbox
	if sb.SeedEmail == "" || sb.SeedPassword == "" {
		return
	}
	if _, err := c.Service.Seed(ctx, "Demo", sb.SeedEmail, sb.SeedPassword); err != nil {
		logx.Warnf("Failed to seed account %s: %v", sb.SeedEmail, err)
		return
	}
	logx.Infof("Seeded account %s", sb.SeedEmail)
}

func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
