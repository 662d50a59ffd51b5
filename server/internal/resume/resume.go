// Package resume supplies the bytes served by GET /api/resume/download.
package resume

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// maxSize bounds how much of a remote object is read into memory.
const maxSize = 1 << 20

// Document is a downloadable resume.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Source produces the current resume.
type Source interface {
	Resume(ctx context.Context) (*Document, error)
}

// Static serves fixed text.
type Static struct {
	Filename string
	Text     string
}

// NewStatic returns the built-in resume under filename.
func NewStatic(filename string) *Static {
	return &Static{Filename: filename, Text: defaultText}
}

func (s *Static) Resume(ctx context.Context) (*Document, error) {
	return &Document{Filename: s.Filename, ContentType: "text/plain", Content: []byte(s.Text)}, nil
}

// HealthPing always succeeds.
func (s *Static) HealthPing(ctx context.Context) error { return nil }

// objectAPI is the subset of *s3.Client the S3 source needs.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Config selects the object holding the resume.
type S3Config struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string // optional; enables path-style for MinIO and friends
	Filename string
}

// S3 reads the resume from an S3-compatible bucket on every request.
type S3 struct {
	api      objectAPI
	bucket   string
	key      string
	filename string
}

// NewS3 builds an S3 source using the default AWS credential chain.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3(client, cfg), nil
}

func newS3(api objectAPI, cfg S3Config) *S3 {
	filename := cfg.Filename
	if filename == "" {
		filename = cfg.Key
	}
	return &S3{api: api, bucket: cfg.Bucket, key: cfg.Key, filename: filename}
}

func (s *S3) Resume(ctx context.Context) (*Document, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &s.key})
	if err != nil {
		return nil, fmt.Errorf("get resume s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(out.Body, maxSize))
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	ct := "text/plain"
	if out.ContentType != nil && *out.ContentType != "" {
		ct = *out.ContentType
	}
	return &Document{Filename: s.filename, ContentType: ct, Content: body}, nil
}

// HealthPing checks the object is reachable.
func (s *S3) HealthPing(ctx context.Context) error {
	_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.bucket, Key: &s.key})
	return err
}

var defaultText = strings.TrimSpace(`
HARVINDER SINGH
Full Stack Developer

CONTACT INFORMATION
Email: harvinder.singh@email.com
LinkedIn: linkedin.com/in/harvinder-singh
GitHub: github.com/harvinder-singh

SUMMARY
Full-stack developer with strong fundamentals in modern web technologies.

TECHNICAL SKILLS
Frontend: React.js, Vue.js, JavaScript (ES6+), TypeScript, HTML5, CSS3
Backend: Node.js, Express.js, Python, Django, RESTful APIs, GraphQL
Database: MongoDB, PostgreSQL, MySQL, Redis
Cloud & Tools: AWS, Docker, Git

PROJECTS
1. Full-Stack E-Commerce Platform
2. Collaborative Task Management App
3. Weather Analytics Dashboard
`) + "\n"
