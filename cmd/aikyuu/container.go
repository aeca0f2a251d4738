package main

import (
	"context"
	"path/filepath"

	"github.com/Abraxas-365/aikyuu/account/auth"
	"github.com/Abraxas-365/aikyuu/account/auth/authinfra"
	"github.com/Abraxas-365/aikyuu/account/auth/authstore"
	"github.com/Abraxas-365/aikyuu/account/billing/billingstore"
	"github.com/Abraxas-365/aikyuu/account/profile/profilestore"
	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/config"
	"github.com/Abraxas-365/aikyuu/pkg/fsx"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/aikyuu/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis/analysissrv"
	"github.com/Abraxas-365/aikyuu/recruitment/analysis/analysisstore"
	"github.com/Abraxas-365/aikyuu/recruitment/criteria/criteriastore"
	"github.com/Abraxas-365/aikyuu/recruitment/position/positionstore"
	"github.com/Abraxas-365/aikyuu/recruitment/report/reportsrv"
	"github.com/Abraxas-365/aikyuu/recruitment/resume/resumestore"
	"github.com/Abraxas-365/aikyuu/ui"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
)

// Container holds one instance of every store, shared by all commands
type Container struct {
	Config *config.Config

	// Infrastructure
	Redis    *redis.Client
	Tokens   auth.TokenStore
	Exports  fsx.FileSystem
	API      *apix.Client
	Notifier storex.Notifier
	Prefs    *ui.Preferences

	// Stores
	Keeper    *authstore.Keeper
	Auth      *authstore.Store
	Positions *positionstore.Store
	Criteria  *criteriastore.Store
	Resumes   *resumestore.Store
	Analysis  *analysisstore.Store
	Profile   *profilestore.Store
	Billing   *billingstore.Store

	// Services
	Analyzer *analysissrv.Service
	Reports  *reportsrv.Service
}

func NewContainer(ctx context.Context, cfg *config.Config, notifier storex.Notifier) (*Container, error) {
	c := &Container{Config: cfg, Notifier: notifier, Prefs: ui.NewPreferences()}
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initStores()
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	// 1. Session token store
	switch c.Config.Session.Store {
	case "redis":
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Session.RedisAddr,
			Password: c.Config.Session.RedisPass,
			DB:       0,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.Tokens = authinfra.NewRedisTokenStore(c.Redis, c.Config.Session.RedisKey)
	case "memory":
		c.Tokens = authinfra.NewMemoryTokenStore()
	default:
		dir, name := filepath.Split(c.Config.Session.File)
		if dir == "" {
			dir = "."
		}
		c.Tokens = authinfra.NewFileTokenStore(fsxlocal.NewLocalFileSystem(dir), name)
	}

	// 2. Export sink
	switch c.Config.Export.Sink {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.Config.Export.AWSRegion))
		if err != nil {
			return err
		}
		c.Exports = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), c.Config.Export.AWSBucket, c.Config.Export.Prefix)
	default:
		c.Exports = fsxlocal.NewLocalFileSystem(c.Config.Export.Dir)
	}

	// 3. Transport, authenticated through the keeper
	c.Keeper = authstore.NewKeeper(c.Tokens)
	if _, err := c.Keeper.Restore(ctx); err != nil {
		logx.Debugf("no usable session: %v", err)
	}
	c.API = apix.NewClient(apix.Config{
		BaseURL:   c.Config.API.BaseURL,
		Timeout:   c.Config.API.Timeout,
		UserAgent: c.Config.API.UserAgent,
	}, c.Keeper)
	return nil
}

func (c *Container) initStores() {
	c.Auth = authstore.New(c.API, c.Notifier, c.Keeper)
	c.Positions = positionstore.New(c.API, c.Notifier)
	c.Criteria = criteriastore.New(c.API, c.Notifier, c.Positions)
	c.Resumes = resumestore.New(c.API, c.Notifier, resumestore.Config{
		Concurrency: c.Config.Upload.Concurrency,
		Checker:     resumestore.PDFChecker{},
	})
	c.Analysis = analysisstore.New(c.API, c.Notifier)
	c.Profile = profilestore.New(c.API, c.Notifier)
	c.Billing = billingstore.New(c.API, c.Notifier)

	p := c.Config.Polling
	cfg := analysissrv.DefaultConfig()
	cfg.StatusInterval = p.StatusInterval
	cfg.ProgressInterval = p.ProgressInterval
	cfg.RedirectDelay = p.RedirectDelay
	cfg.MaxAttempts = p.MaxAttempts
	cfg.MaxDuration = p.MaxDuration
	c.Analyzer = analysissrv.NewService(c.Positions, c.Analysis, c.Prefs, c.Notifier, cfg)
	c.Reports = reportsrv.NewService(c.Positions, c.Exports, c.Notifier, "reports")
}

func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
