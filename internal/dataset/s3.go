package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/atharv3903/skyroute/internal/model"
)

// ObjectGetter is the part of *s3.Client the S3 source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a CSV or Parquet object; the format follows the key extension.
type S3Source struct {
	client ObjectGetter
	bucket string
	key    string
	cols   Columns
}

func NewS3Source(ctx context.Context, region, bucket, key string, cols Columns) (*S3Source, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return NewS3SourceWithClient(s3.NewFromConfig(cfg), bucket, key, cols), nil
}

func NewS3SourceWithClient(client ObjectGetter, bucket, key string, cols Columns) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key, cols: cols}
}

func (s *S3Source) Name() string { return "s3://" + s.bucket + "/" + s.key }

func (s *S3Source) Load(ctx context.Context) ([]model.Row, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to get object %s: %w", s.Name(), err)
	}
	defer out.Body.Close()

	if strings.EqualFold(path.Ext(s.key), ".parquet") {
		return s.loadParquet(out.Body)
	}
	return ReadCSV(out.Body, s.cols)
}

// loadParquet spools the object to disk since the parquet reader needs to seek.
func (s *S3Source) loadParquet(body io.Reader) ([]model.Row, error) {
	tmp, err := os.CreateTemp("", "skyroute-*.parquet")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("spool parquet object: %w", err)
	}

	return readParquetFile(tmp.Name())
}
