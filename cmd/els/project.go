package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/vango-dev/els/internal/config"
	"github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/render"
	"github.com/vango-dev/els/pkg/resource"
)

// project is a loaded configuration with its renderer.
type project struct {
	cfg      *config.Config
	renderer *render.Renderer
	logger   *slog.Logger
}

// loadProject loads els.json from flags.dir, or from the nearest project
// root above the working directory, and builds the renderer.
func loadProject(flags *globalFlags) (*project, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.dir != "" {
		cfg, err = config.LoadOrDefault(flags.dir)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(flags.verbose)

	source, err := newSource(cfg)
	if err != nil {
		return nil, err
	}

	renderer := render.NewRenderer(render.Config{
		Dirs:       cfg.RenderDirs(),
		Attributes: cfg.AttributeNames(),
		Cache:      resource.NewCache(source),
		Logger:     logger,
	})

	return &project{cfg: cfg, renderer: renderer, logger: logger}, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newSource returns the resource source selected by cfg.
func newSource(cfg *config.Config) (resource.Source, error) {
	if !cfg.IsS3() {
		return resource.DiskSource{}, nil
	}

	region := cfg.Source.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		return nil, errors.New("E123").
			WithDetail("source.region is not set and AWS_REGION is empty")
	}

	opts := s3.Options{
		Region:       region,
		Credentials:  aws.NewCredentialsCache(envCredentials()),
		UsePathStyle: cfg.Source.PathStyle,
	}
	if cfg.Source.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Source.Endpoint)
	}

	return resource.NewS3Source(s3.New(opts), cfg.Source.Bucket, cfg.Source.Prefix), nil
}

// envCredentials reads static credentials from the standard AWS
// environment variables.
func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id := os.Getenv("AWS_ACCESS_KEY_ID")
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New("E123").
				WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set for an s3 source")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})
}

// readInput reads name, or stdin when name is "-" or empty.
func readInput(name string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "" || name == "-" {
		data, err = io.ReadAll(stdin)
		name = "<stdin>"
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", errors.New("E140").WithFile(name).Wrap(err)
	}
	return string(data), nil
}

// writeOutput writes s to name, or to w when name is empty.
func writeOutput(name string, w io.Writer, s string) error {
	if name == "" {
		_, err := io.WriteString(w, s)
		return err
	}
	return os.WriteFile(name, []byte(s), 0644)
}
