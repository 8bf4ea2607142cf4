package snapshotsvc

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/adspirelabs/punotes/core"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Store struct {
	client objectPutter
	bucket string
	region string
	prefix string
}

var _ core.SnapshotStore = (*S3Store)(nil)

func NewS3Store(ctx context.Context, conf *core.Config) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(conf.Snapshot.S3Region)}
	if conf.Snapshot.S3AccessKey != "" && conf.Snapshot.S3SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.Snapshot.S3AccessKey, conf.Snapshot.S3SecretKey, ""),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: conf.Snapshot.S3Bucket,
		region: conf.Snapshot.S3Region,
		prefix: conf.Snapshot.S3Prefix,
	}, nil
}

// Put uploads data as a JSON object and returns its URL.
func (s *S3Store) Put(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(s.prefix, path.Base(name))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", errors.Wrap(err, "uploading snapshot")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
