package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/wavelength-audio/wavelength-backend/domain"
)

type S3Config struct {
	KeyID         string
	AppKey        string
	Endpoint      string
	Region        string
	Bucket        string
	PublicBaseURL string
}

type S3Provider struct {
	api    *s3.S3
	bucket string
	// publicBaseURL prefixes object keys into client-reachable URLs; it
	// points at the bucket's CDN or website endpoint.
	publicBaseURL string
}

func NewS3Provider(cfg S3Config) (*S3Provider, error) {
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.KeyID, cfg.AppKey, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("create s3 session failed: %w", err)
	}

	return &S3Provider{
		api:           s3.New(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

func (p *S3Provider) Put(ctx context.Context, folder, ext, contentType string, content io.ReadSeeker) (domain.MediaRef, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	_, err := p.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return domain.MediaRef{}, fmt.Errorf("upload %q failed: %w", key, err)
	}

	return domain.MediaRef{
		URL:      fmt.Sprintf("%s/%s", p.publicBaseURL, key),
		PublicID: key,
	}, nil
}

func (p *S3Provider) Delete(ctx context.Context, publicID string) error {
	_, err := p.api.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("delete %q failed: %w", publicID, err)
	}
	return nil
}
