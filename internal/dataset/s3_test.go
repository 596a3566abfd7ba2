package dataset_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharv3903/skyroute/internal/dataset"
	"github.com/atharv3903/skyroute/internal/model"
)

type fakeS3 struct {
	objects map[string][]byte
	got     *s3.GetObjectInput
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.got = in
	b, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(b)))}, nil
}

func TestS3Source_CSV(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{
		"data/flights.csv": []byte("origin,destination,duration\nJFK,BOS,70\n"),
	}}
	src := dataset.NewS3SourceWithClient(fake, "bucket", "data/flights.csv", dataset.DefaultColumns())
	assert.Equal(t, "s3://bucket/data/flights.csv", src.Name())

	rows, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{"JFK", "BOS", 70.0}}, rows)
	assert.Equal(t, "bucket", aws.ToString(fake.got.Bucket))
}

func TestS3Source_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.parquet")
	recs := []model.Record{{Origin: "A", Destination: "B", Duration: 12.5}}
	require.NoError(t, dataset.WriteParquet(path, recs))
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	fake := &fakeS3{objects: map[string][]byte{"f.parquet": b}}
	rows, err := dataset.NewS3SourceWithClient(fake, "bucket", "f.parquet", dataset.DefaultColumns()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Row{{"A", "B", 12.5}}, rows)
}

func TestS3Source_MissingObject(t *testing.T) {
	fake := &fakeS3{}
	_, err := dataset.NewS3SourceWithClient(fake, "bucket", "nope.csv", dataset.DefaultColumns()).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://bucket/nope.csv")
}
