package factory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/config"
	"github.com/harvinder-fsd/roster/server/internal/resume"
)

// ResumeSource is a resume.Source that can report its own health.
type ResumeSource interface {
	resume.Source
	HealthPing(ctx context.Context) error
}

// NewResumeSource returns the S3 source when a bucket is configured and the
// built-in text otherwise.
func NewResumeSource(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ResumeSource, error) {
	if cfg.ResumeS3Bucket == "" {
		return resume.NewStatic(cfg.ResumeFilename), nil
	}
	src, err := resume.NewS3(ctx, resume.S3Config{
		Bucket:   cfg.ResumeS3Bucket,
		Key:      cfg.ResumeS3Key,
		Region:   cfg.ResumeS3Region,
		Endpoint: cfg.ResumeS3Endpoint,
		Filename: cfg.ResumeFilename,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("bucket", cfg.ResumeS3Bucket).Str("key", cfg.ResumeS3Key).Msg("serving resume from s3")
	return src, nil
}
